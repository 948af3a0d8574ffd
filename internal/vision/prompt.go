// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pdiddy/pageforge/internal/httputil"
	"github.com/pdiddy/pageforge/pkg/types"
)

// analysisPrompt instructs the model to transcribe only the formatting it
// can see. The rules are strict because vision models otherwise infer
// emphasis from semantics instead of from the glyphs on the page.
const analysisPrompt = `TASK:
Analyze the IMAGE(S) and reproduce ONLY the REAL inline formatting exactly as it appears.
Multiple images represent consecutive pages of ONE document. Read them in order (page 1 -> page 2).

INLINE FORMATTING RULES:
1) Bold -> use **bold** ONLY if the text is visually thicker/darker.
2) Italic -> use *italic* ONLY if the text is clearly slanted.
3) Bold+Italic -> use ***bold+italic*** ONLY if BOTH bold and italic are clearly visible.
4) If the font looks normal (no slant, no extra thickness), output plain text (no *, ** or ***).
5) NEVER infer formatting from semantics or from your understanding of English. Only from what you SEE.

SPECIAL FORMATTING RULES:
1) Section Titles/Headers (Before Class, Learning Objectives, Cross-curricular skills, Materials needed, Classroom Arrangement, etc.) -> ALWAYS use **bold**
2) Individual Letters when appearing alone -> ALWAYS use *italic* (Example: *t*, *f*, *s*)
3) Song/Music Names -> ALWAYS use *italic* (Example: *Hello and Goodbye songs*)
4) Labels with formatting (Arts:, Music:, P.E.:) -> Apply formatting exactly as shown in image

HEADINGS:
- If text is visually a section title (larger font or clearly a heading), return it as a separate item or heading.
- Prefer "type": "h2" for main section headings like "**Before Class.**", "**Learning Objectives:**", etc.
- Do NOT mark headings as italic, even if the font is slightly stylized.

BULLETS:
- Mark an item as "type": "li" ONLY if there is a real bullet dot "•" or equivalent list marker in the image.
- If there is NO bullet marker, use "type": "p" instead, even if it looks like a list.
- The bullet symbol "•" should NOT appear in the text itself, only as list structure.

LETTERS AND SHORT WORDS:
- Preserve formatting of individual letters or short words exactly as in the image.
  Example: in "Say it right! *t*, *f*, and *s*", output exactly like this with italic letters.

OUTPUT:
Return ONLY valid JSON in this exact structure:

{
  "sections": [
    {
      "heading": "**Title if present**",
      "type": "h2",
      "items": [
        { "text": "inline formatted content", "type": "p" },
        { "text": "**Can sing along to the *Hello and Goodbye songs*.**", "type": "li" }
      ]
    }
  ]
}
`

// PromptVersion participates in cache keys so cached responses are
// invalidated when the prompt changes.
const PromptVersion = "v1"

// defaultAPIURL is the OpenAI Responses API endpoint.
const defaultAPIURL = "https://api.openai.com/v1/responses"

// OpenAIBackend calls the OpenAI Responses API to analyze page images.
// Per prd001-analysis R3.1.
type OpenAIBackend struct {
	Config types.VisionConfig
	Client *http.Client
}

// openaiRequest is the request body for the Responses API.
type openaiRequest struct {
	Model       string          `json:"model"`
	Temperature float64         `json:"temperature"`
	Input       []openaiMessage `json:"input"`
}

// openaiMessage is a single message in the Responses API input.
type openaiMessage struct {
	Role    string          `json:"role"`
	Content []openaiContent `json:"content"`
}

// openaiContent is one content part: either input text or an input image
// carried as a base64 data URL.
type openaiContent struct {
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

// openaiResponse is the subset of the Responses API reply we consume.
type openaiResponse struct {
	Output []struct {
		Type    string `json:"type"`
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"output"`
}

// Analyze submits the pages in order with the analysis prompt and returns
// the joined output text blocks (R3.2, R3.3). An empty reply returns an
// empty string; classifying that as a failure belongs to the extraction
// stage.
func (b *OpenAIBackend) Analyze(ctx context.Context, pages []Page) (string, error) {
	content := []openaiContent{{Type: "input_text", Text: analysisPrompt}}
	for _, page := range pages {
		content = append(content, openaiContent{
			Type:     "input_image",
			ImageURL: "data:image/png;base64," + base64.StdEncoding.EncodeToString(page.PNG),
		})
	}

	reqBody := openaiRequest{
		Model:       b.Config.Model,
		Temperature: 0,
		Input:       []openaiMessage{{Role: "user", Content: content}},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	url := b.Config.BaseURL
	if url == "" {
		url = defaultAPIURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+b.Config.APIKey)
	if b.Config.UserAgent != "" {
		req.Header.Set("User-Agent", b.Config.UserAgent)
	}

	client := b.Client
	if client == nil {
		client = &http.Client{Timeout: b.Config.Timeout}
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, b.Config.MaxRetries)
	if err != nil {
		return "", fmt.Errorf("calling vision API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("vision API returned %d: %s", resp.StatusCode, string(body))
	}

	var oResp openaiResponse
	if err := json.NewDecoder(resp.Body).Decode(&oResp); err != nil {
		return "", fmt.Errorf("decoding vision response: %w", err)
	}

	var texts []string
	for _, out := range oResp.Output {
		for _, block := range out.Content {
			if block.Type == "output_text" && block.Text != "" {
				texts = append(texts, block.Text)
			}
		}
	}
	return strings.TrimSpace(strings.Join(texts, "\n")), nil
}
