package transport

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strings"
)

// Form accumulates fields and file parts for a multipart upload.
type Form struct {
	fields []field
	files  []filePart
}

type field struct {
	name, value string
}

type filePart struct {
	fieldName   string
	fileName    string
	contentType string
	data        []byte
}

// AddField appends a text field. Empty values are skipped, matching the
// optional caption/location handling of the upload forms.
func (f *Form) AddField(name, value string) {
	if value == "" {
		return
	}
	f.fields = append(f.fields, field{name: name, value: value})
}

// AddFile appends a file part.
func (f *Form) AddFile(fieldName, fileName, contentType string, data []byte) {
	f.files = append(f.files, filePart{
		fieldName:   fieldName,
		fileName:    fileName,
		contentType: contentType,
		data:        data,
	})
}

// Encode renders the multipart body and returns it with its content type.
func (f *Form) Encode() ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, fl := range f.fields {
		if err := w.WriteField(fl.name, fl.value); err != nil {
			return nil, "", fmt.Errorf("encode form field %q: %w", fl.name, err)
		}
	}

	for _, fp := range f.files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`,
			escapeQuotes(fp.fieldName), escapeQuotes(fp.fileName)))
		h.Set("Content-Type", fp.contentType)

		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("encode form file %q: %w", fp.fieldName, err)
		}
		if _, err := part.Write(fp.data); err != nil {
			return nil, "", fmt.Errorf("write form file %q: %w", fp.fieldName, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("finalize form: %w", err)
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

func escapeQuotes(s string) string {
	return strings.NewReplacer("\\", "\\\\", `"`, "\\\"").Replace(s)
}
