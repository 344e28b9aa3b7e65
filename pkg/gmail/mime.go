package gmail

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"mime"
	"mime/multipart"
	"net/textproto"
)

// buildMIME assembles a multipart/alternative message with a plain-text part
// and an HTML part, in that order so clients prefer the HTML rendering.
func buildMIME(msg Message) ([]byte, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fmt.Fprintf(&buf, "From: %s\r\n", msg.From)
	fmt.Fprintf(&buf, "To: %s\r\n", msg.To)
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", msg.Subject))
	fmt.Fprintf(&buf, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/alternative; boundary=%q\r\n", w.Boundary())
	fmt.Fprintf(&buf, "\r\n")

	if err := writePart(w, "text/plain", msg.Text); err != nil {
		return nil, err
	}
	if err := writePart(w, "text/html", msg.HTML); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func writePart(w *multipart.Writer, contentType, body string) error {
	header := textproto.MIMEHeader{}
	header.Set("Content-Type", contentType+`; charset="UTF-8"`)
	header.Set("Content-Transfer-Encoding", "base64")

	part, err := w.CreatePart(header)
	if err != nil {
		return err
	}
	_, err = part.Write(wrapBase64([]byte(body)))
	return err
}

// wrapBase64 encodes the body and folds it at the 76-column MIME limit.
func wrapBase64(body []byte) []byte {
	encoded := base64.StdEncoding.EncodeToString(body)

	const lineLen = 76
	var out bytes.Buffer
	for len(encoded) > lineLen {
		out.WriteString(encoded[:lineLen])
		out.WriteString("\r\n")
		encoded = encoded[lineLen:]
	}
	out.WriteString(encoded)
	return out.Bytes()
}
