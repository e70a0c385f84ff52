package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"strings"
	"unicode"

	"taskmanager/internal/model"
)

// fallbackReasoning marks a prediction produced by the keyword heuristic
// rather than the model.
const fallbackReasoning = "Fallback keyword-based prediction"

// Keyword signals for the deterministic fallback heuristic.
var (
	frontendKeywords = []string{"ui", "frontend", "page", "component", "responsive", "mobile", "design", "css", "html", "react"}
	backendKeywords  = []string{"api", "backend", "database", "server", "auth", "security", "log", "data"}
)

var (
	jsonObjectRe = regexp.MustCompile(`(?s)\{.*\}`)
	jsonArrayRe  = regexp.MustCompile(`(?s)\[.*?\]`)
)

// Prediction is the strict internal result of a skill consultation.
type Prediction struct {
	SkillNames []string
	Confidence map[string]float64
	Reasoning  string
}

// SimilarTaskFinder supplies historically similar tasks (with skills loaded)
// as behavioral evidence for prediction.
type SimilarTaskFinder interface {
	FindSimilarByTitle(ctx context.Context, title string, limit int) ([]model.Task, error)
}

// Predictor runs the two-pass skill consultation: an initial guess, then a
// verification pass that cross-checks against skill-frequency patterns from
// similar historical tasks. Oracle failures never abort a prediction; they
// route through the keyword fallback (pass one) or keep the initial result
// (pass two).
type Predictor struct {
	completer    Completer
	tasks        SimilarTaskFinder
	similarLimit int
}

func NewPredictor(completer Completer, tasks SimilarTaskFinder, similarLimit int) *Predictor {
	if similarLimit <= 0 {
		similarLimit = 5
	}
	return &Predictor{completer: completer, tasks: tasks, similarLimit: similarLimit}
}

// Predict returns the skill set inferred for the given title, limited to the
// available catalog. Only a similar-task store failure is returned as an
// error; oracle trouble degrades per the fallback policy.
func (p *Predictor) Predict(ctx context.Context, title string, availableSkills []model.Skill) (*Prediction, error) {
	similar, err := p.tasks.FindSimilarByTitle(ctx, title, p.similarLimit)
	if err != nil {
		return nil, fmt.Errorf("find similar tasks: %w", err)
	}

	initial := p.initialPrediction(ctx, title, availableSkills, similar)
	return p.verifiedPrediction(ctx, title, availableSkills, initial, similar), nil
}

func (p *Predictor) initialPrediction(ctx context.Context, title string, availableSkills []model.Skill, similar []model.Task) *Prediction {
	text, err := p.complete(ctx, buildInitialPrompt(title, availableSkills, similar))
	if err != nil {
		log.Printf("⚠️  Initial skill prediction failed, using fallback: %v", err)
		return fallbackPrediction(title, availableSkills)
	}

	pred, err := parsePrediction(text, availableSkills)
	if err != nil {
		log.Printf("⚠️  Unparsable initial prediction, using fallback: %v", err)
		return fallbackPrediction(title, availableSkills)
	}
	return pred
}

// verifiedPrediction is best-effort; any failure keeps the initial result.
func (p *Predictor) verifiedPrediction(ctx context.Context, title string, availableSkills []model.Skill, initial *Prediction, similar []model.Task) *Prediction {
	text, err := p.complete(ctx, buildVerificationPrompt(title, availableSkills, initial, similar))
	if err != nil {
		log.Printf("⚠️  Skill verification failed, keeping initial prediction: %v", err)
		return initial
	}

	pred, err := parsePrediction(text, availableSkills)
	if err != nil {
		log.Printf("⚠️  Unparsable verification, keeping initial prediction: %v", err)
		return initial
	}
	return pred
}

// ExtractKeywords asks the oracle for 3-5 technical keywords from a title.
// Best-effort: returns nil on any oracle or parse failure.
func (p *Predictor) ExtractKeywords(ctx context.Context, title string) []string {
	prompt := fmt.Sprintf(`Extract 3-5 core technical keywords from this task title.
Focus on: technologies, features, components, actions.
Ignore: filler words, "As a", "I want to", "so that".
Return only a JSON array of keywords.

Title: %q

Example response: ["authentication", "API", "database"]`, title)

	text, err := p.complete(ctx, prompt)
	if err != nil {
		log.Printf("⚠️  Keyword extraction failed: %v", err)
		return nil
	}

	match := jsonArrayRe.FindString(text)
	if match == "" {
		return nil
	}
	var keywords []string
	if err := json.Unmarshal([]byte(match), &keywords); err != nil {
		return nil
	}

	out := make([]string, 0, 5)
	for _, kw := range keywords {
		if len(kw) > 2 {
			out = append(out, kw)
		}
		if len(out) == 5 {
			break
		}
	}
	return out
}

func (p *Predictor) complete(ctx context.Context, prompt string) (string, error) {
	if p.completer == nil {
		return "", fmt.Errorf("no completion client configured")
	}
	return p.completer.Complete(ctx, prompt)
}

// parsePrediction scans the response for the first brace-delimited JSON
// object and decodes it. Skill names outside the catalog are discarded.
func parsePrediction(text string, availableSkills []model.Skill) (*Prediction, error) {
	match := jsonObjectRe.FindString(text)
	if match == "" {
		return nil, fmt.Errorf("no JSON object found in response")
	}

	var raw struct {
		Skills     []string           `json:"skills"`
		Confidence map[string]float64 `json:"confidence"`
		Reasoning  string             `json:"reasoning"`
	}
	if err := json.Unmarshal([]byte(match), &raw); err != nil {
		return nil, fmt.Errorf("decode prediction: %w", err)
	}

	valid := make(map[string]bool, len(availableSkills))
	for _, s := range availableSkills {
		valid[s.Name] = true
	}

	names := make([]string, 0, len(raw.Skills))
	for _, name := range raw.Skills {
		if valid[name] {
			names = append(names, name)
		}
	}

	confidence := raw.Confidence
	if confidence == nil {
		confidence = map[string]float64{}
	}
	reasoning := raw.Reasoning
	if reasoning == "" {
		reasoning = "LLM analysis completed"
	}

	return &Prediction{SkillNames: names, Confidence: confidence, Reasoning: reasoning}, nil
}

// fallbackPrediction is the deterministic keyword heuristic used when the
// oracle is unavailable or unparsable. Uniform 0.5 confidence. Keywords are
// matched as whole words so that "login" does not trigger "log".
func fallbackPrediction(title string, availableSkills []model.Skill) *Prediction {
	words := titleWords(title)

	hasFrontend := containsAny(words, frontendKeywords)
	hasBackend := containsAny(words, backendKeywords)

	var names []string
	for _, skill := range availableSkills {
		skillLower := strings.ToLower(skill.Name)
		switch {
		case hasFrontend && strings.Contains(skillLower, "frontend"):
			names = append(names, skill.Name)
		case hasBackend && strings.Contains(skillLower, "backend"):
			names = append(names, skill.Name)
		}
	}

	// No signal fired, or the catalog has no matching skills: select all.
	if len(names) == 0 {
		for _, skill := range availableSkills {
			names = append(names, skill.Name)
		}
	}

	confidence := make(map[string]float64, len(names))
	for _, name := range names {
		confidence[name] = 0.5
	}

	return &Prediction{SkillNames: names, Confidence: confidence, Reasoning: fallbackReasoning}
}

func titleWords(title string) map[string]bool {
	fields := strings.FieldsFunc(strings.ToLower(title), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	words := make(map[string]bool, len(fields))
	for _, f := range fields {
		words[f] = true
	}
	return words
}

func containsAny(words map[string]bool, keywords []string) bool {
	for _, kw := range keywords {
		if words[kw] {
			return true
		}
	}
	return false
}

// skillFrequency returns, per skill name, the fraction of similar tasks that
// required it.
func skillFrequency(tasks []model.Task) map[string]float64 {
	if len(tasks) == 0 {
		return map[string]float64{}
	}

	counts := map[string]int{}
	for _, task := range tasks {
		for _, skill := range task.Skills {
			counts[skill.Name]++
		}
	}

	frequency := make(map[string]float64, len(counts))
	for name, count := range counts {
		frequency[name] = float64(count) / float64(len(tasks))
	}
	return frequency
}
