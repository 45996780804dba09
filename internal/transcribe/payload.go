package transcribe

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"

	"voicetype/internal/provider"
)

// minAudioBytes rejects recordings that are too small to contain speech,
// typically an aborted or corrupted capture.
const minAudioBytes = 1000

// mimeByExt maps recognized container extensions to their MIME types.
// Anything else falls back to audio/m4a, the default capture format.
var mimeByExt = map[string]string{
	"m4a":  "audio/m4a",
	"mp4":  "audio/mp4",
	"webm": "audio/webm",
	"caf":  "audio/x-caf",
}

// ContainerExt infers the audio container extension from a location
// reference (path, URI, or blob name). Query and fragment suffixes are
// stripped before looking at the extension.
func ContainerExt(location string) string {
	if i := strings.IndexAny(location, "?#"); i >= 0 {
		location = location[:i]
	}
	dot := strings.LastIndex(location, ".")
	if dot < 0 || dot == len(location)-1 {
		return "m4a"
	}
	ext := strings.ToLower(location[dot+1:])
	if _, ok := mimeByExt[ext]; !ok {
		return "m4a"
	}
	return ext
}

// MIMEType resolves a container extension to its MIME type.
func MIMEType(ext string) string {
	if mime, ok := mimeByExt[strings.ToLower(ext)]; ok {
		return mime
	}
	return "audio/m4a"
}

// ExtForMIME is the reverse lookup, used by the relay to reconstruct a
// filename from the MIME type it received.
func ExtForMIME(mime string) string {
	for ext, m := range mimeByExt {
		if strings.EqualFold(m, mime) {
			return ext
		}
	}
	return "m4a"
}

// CheckAudio validates raw audio bytes before any network call.
func CheckAudio(audio []byte) error {
	if len(audio) < minAudioBytes {
		return &PayloadError{Reason: fmt.Sprintf("audio too short or empty (%d bytes)", len(audio))}
	}
	return nil
}

// BuildMultipart encodes audio as the multipart/form-data body the
// speech-to-text endpoint expects. Field order is fixed: file, model,
// response_format.
func BuildMultipart(audio []byte, ext, contentType, model string) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := createAudioPart(writer, ext, contentType)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(audio); err != nil {
		return nil, "", fmt.Errorf("failed to write audio data: %w", err)
	}

	if err := writer.WriteField("model", model); err != nil {
		return nil, "", fmt.Errorf("failed to write model field: %w", err)
	}
	if err := writer.WriteField("response_format", "text"); err != nil {
		return nil, "", fmt.Errorf("failed to write response_format field: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart writer: %w", err)
	}
	return &buf, writer.FormDataContentType(), nil
}

// createAudioPart writes the file part with an explicit content-type, which
// multipart.Writer.CreateFormFile does not allow.
func createAudioPart(writer *multipart.Writer, ext, contentType string) (io.Writer, error) {
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="recording.%s"`, ext))
	header.Set("Content-Type", contentType)
	return writer.CreatePart(header)
}

// Envelope is the relay request body. The relay decodes the audio and
// performs the multipart conversion server-side.
type Envelope struct {
	APIKey      string `json:"apiKey"`
	Provider    string `json:"provider"`
	AudioBase64 string `json:"audioBase64"`
	MIMEType    string `json:"mimeType"`
}

// BuildEnvelope wraps raw audio, the credential, and provider tag into the
// relay's JSON envelope.
func BuildEnvelope(audio []byte, apiKey string, p provider.Provider, mimeType string) Envelope {
	return Envelope{
		APIKey:      apiKey,
		Provider:    p.String(),
		AudioBase64: base64.StdEncoding.EncodeToString(audio),
		MIMEType:    mimeType,
	}
}
