package llm

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"taskmanager/internal/model"
)

func skillNameList(skills []model.Skill) string {
	names := make([]string, len(skills))
	for i, s := range skills {
		names[i] = s.Name
	}
	return strings.Join(names, ", ")
}

// writeHistoricalContext appends the similar-task list and the frequency
// pattern derived from it to the prompt.
func writeHistoricalContext(b *strings.Builder, heading string, similar []model.Task) {
	if len(similar) == 0 {
		return
	}

	fmt.Fprintf(b, "\n\n%s:", heading)
	for i, task := range similar {
		skills := make([]string, len(task.Skills))
		for j, s := range task.Skills {
			skills[j] = s.Name
		}
		fmt.Fprintf(b, "\n%d. %q → Skills: [%s]", i+1, task.Title, strings.Join(skills, ", "))
	}

	frequency := skillFrequency(similar)
	if len(frequency) == 0 {
		return
	}

	// Stable ordering so identical inputs build identical prompts.
	names := make([]string, 0, len(frequency))
	for name := range frequency {
		names = append(names, name)
	}
	sort.Strings(names)

	b.WriteString("\n\nPattern from similar tasks:")
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf(" %d%% needed %s", int(math.Round(frequency[name]*100)), name)
	}
	b.WriteString(strings.Join(parts, ","))
}

func buildInitialPrompt(title string, availableSkills []model.Skill, similar []model.Task) string {
	skillNames := skillNameList(availableSkills)

	var b strings.Builder
	fmt.Fprintf(&b, `You are an experienced lead software engineer analyzing task requirements.

Task: %q

Available skills: %s`, title, skillNames)

	writeHistoricalContext(&b, "Similar tasks from our database", similar)

	fmt.Fprintf(&b, `

Analyze this task step-by-step:
1. What UI components or user interactions are needed? → Frontend skill
2. What server logic, APIs, or data persistence is needed? → Backend skill
3. Consider that tasks may require BOTH skills if they involve full-stack work
4. You should be resolute and concise in your selection. Focus ONLY on the title as the task's objective, not what could be tangentially related.

Respond with valid JSON only:
{
  "skills": ["skill1", "skill2"],
  "confidence": {"skill1": 0.95, "skill2": 0.85},
  "reasoning": "Detailed explanation of your analysis"
}

Rules:
- Only use skills from: %s
- Minimum confidence: 0.6
- Be specific in reasoning
- Must be valid JSON`, skillNames)

	return b.String()
}

func buildVerificationPrompt(title string, availableSkills []model.Skill, initial *Prediction, similar []model.Task) string {
	skillNames := skillNameList(availableSkills)

	var b strings.Builder
	fmt.Fprintf(&b, `You are a senior technical lead reviewing a skill assignment.

Task: %q

Available skills: %s

Initial prediction:
- Skills: %s
- Reasoning: %s`, title, skillNames, strings.Join(initial.SkillNames, ", "), initial.Reasoning)

	writeHistoricalContext(&b, "Historical context from database", similar)

	fmt.Fprintf(&b, `

Verify this prediction:
1. Does the initial prediction align with historical patterns above?
2. Is any required skill missing based on similar tasks?
3. Is any skill unnecessary?

Respond with valid JSON only:
{
  "skills": ["skill1", "skill2"],
  "confidence": {"skill1": 0.95, "skill2": 0.85},
  "reasoning": "Explanation referencing historical patterns if relevant"
}

Rules:
- Only use skills from: %s
- Minimum confidence: 0.6
- Must be valid JSON`, skillNames)

	return b.String()
}
