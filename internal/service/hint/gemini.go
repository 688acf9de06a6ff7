package hint

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"google.golang.org/genai"
)

const DEFAULT_MODEL = "gemini-2.5-flash"

var (
	ErrDisabled      = errors.New("hint: text generation is disabled")
	ErrEmptyResponse = errors.New("hint: empty response")
)

type generator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// Gemini 通过 Gemini 生成干扰词和提示词，只取回复中的第一个词
type Gemini struct {
	gen   generator
	model string
}

func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("创建 Gemini 客户端失败: %w", err)
	}

	return newGemini(client.Models, model), nil
}

func newGemini(gen generator, model string) *Gemini {
	if model == "" {
		model = DEFAULT_MODEL
	}

	return &Gemini{gen: gen, model: model}
}

func (g *Gemini) SpyWord(ctx context.Context, secretWord string) (string, error) {
	prompt := fmt.Sprintf(`CONTEXT: Social deduction game "Shadow Signal".
SECRET WORD: "%s"
TASK: Give ONE single word for the Spy player.
RULES:
1. Same category as "%s".
2. Different from "%s".
3. Reply with ONLY the word, without punctuation, quotes or explanation.`,
		secretWord, secretWord, secretWord)

	word, err := g.firstWord(ctx, prompt)
	if err != nil {
		return "", err
	}

	if strings.EqualFold(word, secretWord) {
		return "", ErrEmptyResponse
	}

	return word, nil
}

func (g *Gemini) Hint(ctx context.Context, secretWord string) (string, error) {
	prompt := fmt.Sprintf(`ROLE: You are the Shadow Guide in the game "Shadow Signal".
SECRET WORD: "%s"
TASK: Give a new, subtle one-word hint.
RULES:
1. Help the citizens recognise the secret word.
2. Stay vague enough to keep the spy confused.
3. Reply with ONLY the one-word hint.`,
		secretWord)

	return g.firstWord(ctx, prompt)
}

func (g *Gemini) firstWord(ctx context.Context, prompt string) (string, error) {
	resp, err := g.gen.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("调用 Gemini 失败: %w", err)
	}

	word := FirstWord(resp.Text())
	if word == "" {
		return "", ErrEmptyResponse
	}

	return word, nil
}

// FirstWord 取文本中的第一个词并去掉首尾的标点
func FirstWord(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}

	return strings.TrimFunc(fields[0], func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSymbol(r)
	})
}

// Disabled 在没有配置 API Key 时使用，所有调用都走降级逻辑
type Disabled struct{}

func (Disabled) SpyWord(context.Context, string) (string, error) {
	return "", ErrDisabled
}

func (Disabled) Hint(context.Context, string) (string, error) {
	return "", ErrDisabled
}
