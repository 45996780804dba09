package api

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	openai "github.com/sashabaranov/go-openai"

	"voicetype/internal/polish"
	"voicetype/internal/provider"
	"voicetype/internal/transcribe"
	"voicetype/internal/utils"
)

// Server holds the relay's upstream wiring. The relay is a stateless
// pass-through: it authenticates nothing and stores nothing, because every
// request carries the caller's own upstream credential.
type Server struct {
	HTTPClient *http.Client

	// BaseURL overrides the provider API base for every request, for tests.
	BaseURL string
}

// NewServer returns a relay server with production upstream wiring.
func NewServer() *Server {
	return &Server{
		HTTPClient: &http.Client{},
	}
}

// RegisterRoutes mounts the relay endpoints.
func (s *Server) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", healthCheck)
	r.POST("/api/transcribe", s.handleTranscribe)
	r.POST("/api/polish", s.handlePolish)
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "voicetype-relay",
	})
}

func (s *Server) httpClient() *http.Client {
	if s.HTTPClient != nil {
		return s.HTTPClient
	}
	return http.DefaultClient
}

func (s *Server) apiBase(p provider.Provider) string {
	if s.BaseURL != "" {
		return s.BaseURL
	}
	return p.APIBase()
}

// TranscribeRequest is the browser-facing body for POST /api/transcribe.
type TranscribeRequest struct {
	APIKey      string `json:"apiKey" binding:"required"`
	Provider    string `json:"provider" binding:"required"`
	AudioBase64 string `json:"audioBase64" binding:"required"`
	MIMEType    string `json:"mimeType"`
}

// handleTranscribe decodes the audio envelope, re-encodes it as multipart,
// and forwards it to the provider's speech-to-text endpoint.
func (s *Server) handleTranscribe(c *gin.Context) {
	var req TranscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "apiKey, provider and audioBase64 are required")
		return
	}

	p, err := provider.Parse(req.Provider)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	audio, err := base64.StdEncoding.DecodeString(req.AudioBase64)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "audioBase64 is not valid base64")
		return
	}
	if err := transcribe.CheckAudio(audio); err != nil {
		utils.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	ext := transcribe.ExtForMIME(req.MIMEType)
	mimeType := req.MIMEType
	if mimeType == "" {
		mimeType = transcribe.MIMEType(ext)
	}
	body, contentType, err := transcribe.BuildMultipart(audio, ext, mimeType, p.TranscriptionModel())
	if err != nil {
		log.Printf("[Relay] failed to build multipart body: %v", err)
		utils.Error(c, http.StatusInternalServerError, "failed to encode audio for upstream")
		return
	}

	url := strings.TrimRight(s.apiBase(p), "/") + "/audio/transcriptions"
	log.Printf("[Relay] forwarding transcription to %s (%d audio bytes)", p, len(audio))

	status, respBody, err := transcribe.DoRequest(c.Request.Context(), s.httpClient(), "Relay", transcribe.TranscribeTimeout,
		func(ctx context.Context) (*http.Request, error) {
			upstream, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body.Bytes()))
			if err != nil {
				return nil, err
			}
			upstream.Header.Set("Content-Type", contentType)
			upstream.Header.Set("Authorization", "Bearer "+req.APIKey)
			return upstream, nil
		})
	if err != nil {
		log.Printf("[Relay] upstream transcription call failed: %v", err)
		utils.Error(c, http.StatusBadGateway, "failed to reach transcription provider")
		return
	}

	if status < 200 || status >= 300 {
		log.Printf("[Relay] provider returned status %d", status)
		utils.Error(c, status, strings.TrimSpace(string(respBody)))
		return
	}

	utils.Text(c, strings.TrimSpace(string(respBody)))
}

// PolishRequest is the browser-facing body for POST /api/polish.
type PolishRequest struct {
	APIKey   string `json:"apiKey" binding:"required"`
	Provider string `json:"provider"`
	Text     string `json:"text" binding:"required"`
}

// handlePolish forwards the transcript to the provider's completion endpoint
// with the fixed editing instruction.
func (s *Server) handlePolish(c *gin.Context) {
	var req PolishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "apiKey and text are required")
		return
	}

	p := provider.OpenAI
	if req.Provider != "" {
		parsed, err := provider.Parse(req.Provider)
		if err != nil {
			utils.Error(c, http.StatusBadRequest, err.Error())
			return
		}
		p = parsed
	}

	polisher := &polish.DirectPolisher{BaseURL: s.BaseURL}
	refined, err := polisher.Polish(c.Request.Context(), req.APIKey, p, req.Text)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			log.Printf("[Relay] completion provider returned status %d", apiErr.HTTPStatusCode)
			utils.Error(c, apiErr.HTTPStatusCode, apiErr.Message)
			return
		}
		log.Printf("[Relay] upstream polish call failed: %v", err)
		utils.Error(c, http.StatusBadGateway, "failed to reach completion provider")
		return
	}

	// An upstream payload without usable content falls back to the input.
	if strings.TrimSpace(refined) == "" {
		refined = req.Text
	}
	utils.Text(c, refined)
}
