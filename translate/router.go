// Package translate pivots conversation text between the session language
// and the pivot language (English), so retrieval and generation always run
// against pivot-language text.
package translate

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/creastat/scoutchat/llm"
	"github.com/creastat/scoutchat/logger"
)

// Router translates text in and out of the pivot language. Both directions
// are best-effort: on any failure the original text is returned unchanged
// and the rest of the pipeline proceeds. Structured entity fields are never
// routed through translation, only free-form question/narrative text.
type Router interface {
	// ToPivot translates inbound text from the session language into the
	// pivot language. No-op when the session language is the pivot.
	ToPivot(ctx context.Context, text, sessionLang string) string

	// FromPivot translates outbound text from the pivot language into the
	// session language. No-op when the session language is the pivot.
	FromPivot(ctx context.Context, text, sessionLang string) string
}

// llmRouter implements Router over the shared generator client.
type llmRouter struct {
	gen     llm.Generator
	log     *logger.Logger
	pivot   string
	timeout time.Duration
}

// New creates a Router that translates via the generative model.
func New(gen llm.Generator, pivot string, timeout time.Duration, log *logger.Logger) Router {
	if pivot == "" {
		pivot = "en"
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &llmRouter{
		gen:     gen,
		log:     log.With("service", "TranslationRouter"),
		pivot:   strings.ToLower(pivot),
		timeout: timeout,
	}
}

// ToPivot implements Router.
func (r *llmRouter) ToPivot(ctx context.Context, text, sessionLang string) string {
	return r.translate(ctx, text, sessionLang, r.pivot)
}

// FromPivot implements Router.
func (r *llmRouter) FromPivot(ctx context.Context, text, sessionLang string) string {
	return r.translate(ctx, text, r.pivot, sessionLang)
}

func (r *llmRouter) translate(ctx context.Context, text, from, to string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}
	from = strings.ToLower(strings.TrimSpace(from))
	to = strings.ToLower(strings.TrimSpace(to))
	if from == "" || to == "" || from == to {
		return text
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	system := fmt.Sprintf(
		"You translate text from %q to %q. Output only the translated text, with no commentary and no quotes. Keep proper names untranslated.",
		from, to,
	)
	out, err := r.gen.Complete(ctx, system, nil, text)
	if err != nil {
		r.log.Warn("translation failed, keeping source text", "from", from, "to", to, "error", err.Error())
		return text
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return text
	}
	return out
}
