package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sethvargo/go-retry"

	"github.com/oxtailbadger/mise/internal/model"
)

const (
	anthropicBaseURL = "https://api.anthropic.com"
	anthropicVersion = "2023-06-01"
	anthropicModel   = "claude-sonnet-4-5"
	maxTokens        = 4096
)

// allowedImageTypes are the media types Claude vision accepts.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// AllowedImageType reports whether the media type can be sent for image
// extraction.
func AllowedImageType(mediaType string) bool {
	return allowedImageTypes[mediaType]
}

// Client extracts structured recipes from URLs, pasted text, and photos
// using the Anthropic Messages API.
type Client struct {
	api    *resty.Client
	pages  *resty.Client
	logger *slog.Logger
}

// NewClient builds an importer. An empty apiKey yields a client whose
// Configured method reports false; callers surface that as 503 rather than
// failing requests against the API.
func NewClient(apiKey string, logger *slog.Logger) *Client {
	api := resty.New().
		SetBaseURL(anthropicBaseURL).
		SetHeader("x-api-key", apiKey).
		SetHeader("anthropic-version", anthropicVersion).
		SetTimeout(60 * time.Second)

	pages := resty.New().
		SetHeader("User-Agent", "Mozilla/5.0 (compatible; MiseApp/1.0)").
		SetTimeout(10 * time.Second)

	return &Client{api: api, pages: pages, logger: logger}
}

// Configured reports whether an API key was provided.
func (c *Client) Configured() bool {
	return c.api.Header.Get("x-api-key") != ""
}

// ParseFromURL fetches the page, strips it to readable text, and extracts
// the recipe.
func (c *Client) ParseFromURL(ctx context.Context, url string) (*model.Recipe, error) {
	text, err := c.fetchPageText(ctx, url)
	if err != nil {
		return nil, err
	}
	prompt := fmt.Sprintf("Parse this recipe content from %s:\n\n%s", url, text)
	recipe, err := c.extract(ctx, []contentBlock{{Type: "text", Text: prompt}})
	if err != nil {
		return nil, err
	}
	recipe.SourceURL = &url
	return recipe, nil
}

// ParseFromText extracts a recipe from pasted text.
func (c *Client) ParseFromText(ctx context.Context, text string) (*model.Recipe, error) {
	prompt := fmt.Sprintf("Parse this recipe:\n\n%s", text)
	return c.extract(ctx, []contentBlock{{Type: "text", Text: prompt}})
}

// ParseFromImage extracts a recipe from a base64-encoded photo, e.g. a
// snapshot of a cookbook page. base64Data carries no data URI prefix.
func (c *Client) ParseFromImage(ctx context.Context, base64Data, mediaType string) (*model.Recipe, error) {
	if !AllowedImageType(mediaType) {
		return nil, fmt.Errorf("unsupported image type %q", mediaType)
	}
	blocks := []contentBlock{
		{Type: "image", Source: &imageSource{Type: "base64", MediaType: mediaType, Data: base64Data}},
		{Type: "text", Text: "Extract the recipe from this image and return the structured JSON."},
	}
	return c.extract(ctx, blocks)
}

type contentBlock struct {
	Type   string       `json:"type"`
	Text   string       `json:"text,omitempty"`
	Source *imageSource `json:"source,omitempty"`
}

type imageSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string         `json:"role"`
	Content []contentBlock `json:"content"`
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

func (c *Client) extract(ctx context.Context, blocks []contentBlock) (*model.Recipe, error) {
	body := messagesRequest{
		Model:     anthropicModel,
		MaxTokens: maxTokens,
		System:    systemPrompt,
		Messages:  []message{{Role: "user", Content: blocks}},
	}

	var out messagesResponse
	backoff := retry.WithMaxRetries(2, retry.NewExponential(time.Second))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		resp, err := c.api.R().
			SetContext(ctx).
			SetBody(body).
			Post("/v1/messages")
		if err != nil {
			return retry.RetryableError(fmt.Errorf("call model api: %w", err))
		}
		switch {
		case resp.StatusCode() == http.StatusOK:
			// Decode by hand rather than via SetResult, which silently
			// skips unmarshalling when the content type is not JSON.
			if err := json.Unmarshal(resp.Body(), &out); err != nil {
				return fmt.Errorf("decode model api response: %w", err)
			}
			return nil
		case resp.StatusCode() == http.StatusTooManyRequests || resp.StatusCode() >= 500:
			return retry.RetryableError(fmt.Errorf("model api status %d", resp.StatusCode()))
		default:
			return fmt.Errorf("model api status %d: %s", resp.StatusCode(), resp.String())
		}
	})
	if err != nil {
		return nil, err
	}

	if len(out.Content) == 0 || out.Content[0].Type != "text" {
		return nil, fmt.Errorf("unexpected response shape from model api")
	}

	recipe, err := decodeRecipeJSON(out.Content[0].Text)
	if err != nil {
		return nil, err
	}
	c.logger.Info("recipe extracted", "name", recipe.Name, "ingredients", len(recipe.Ingredients))
	return recipe, nil
}

// fetchPageText downloads the URL and reduces the HTML to plain text capped
// at 8000 characters, enough for any sane recipe page while keeping the
// prompt small.
func (c *Client) fetchPageText(ctx context.Context, url string) (string, error) {
	resp, err := c.pages.R().SetContext(ctx).Get(url)
	if err != nil {
		return "", fmt.Errorf("fetch url: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("fetch url: status %d", resp.StatusCode())
	}
	return htmlToText(resp.String(), 8000), nil
}

// parsedRecipe is the wire shape the system prompt demands from the model.
type parsedRecipe struct {
	Name           string   `json:"name"`
	TotalTime      *int     `json:"totalTime"`
	ActiveCookTime *int     `json:"activeCookTime"`
	PotsAndPans    *int     `json:"potsAndPans"`
	Servings       int      `json:"servings"`
	Instructions   string   `json:"instructions"`
	GFNotes        *string  `json:"gfNotes"`
	Ingredients    []struct {
		Name         string  `json:"name"`
		Quantity     string  `json:"quantity"`
		Unit         *string `json:"unit"`
		Notes        *string `json:"notes"`
		IsGlutenFlag bool    `json:"isGlutenFlag"`
		GFSubstitute *string `json:"gfSubstitute"`
	} `json:"ingredients"`
	Tags []struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	} `json:"tags"`
}

func decodeRecipeJSON(raw string) (*model.Recipe, error) {
	var p parsedRecipe
	if err := json.Unmarshal([]byte(stripFences(raw)), &p); err != nil {
		return nil, fmt.Errorf("model returned invalid json: %w", err)
	}

	r := &model.Recipe{
		Name:           p.Name,
		TotalTime:      p.TotalTime,
		ActiveCookTime: p.ActiveCookTime,
		PotsAndPans:    p.PotsAndPans,
		Servings:       p.Servings,
		Instructions:   p.Instructions,
		GFNotes:        p.GFNotes,
		GFStatus:       model.GFNeedsReview,
	}
	if r.Servings <= 0 {
		r.Servings = 4
	}

	for i, ing := range p.Ingredients {
		r.Ingredients = append(r.Ingredients, model.RecipeIngredient{
			Name:         ing.Name,
			Quantity:     ing.Quantity,
			Unit:         ing.Unit,
			Notes:        ing.Notes,
			IsGlutenFlag: ing.IsGlutenFlag,
			GFSubstitute: ing.GFSubstitute,
			SortOrder:    i,
		})
	}
	for _, tag := range p.Tags {
		r.Tags = append(r.Tags, model.RecipeTag{
			Type:  model.TagType(tag.Type),
			Value: tag.Value,
		})
	}
	return r, nil
}
