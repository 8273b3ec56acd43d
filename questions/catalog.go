package questions

import (
	"fmt"

	"github.com/EidolonLabs/persona-launchpad/core"
)

// Topics is the fixed topic list. Its order is load-bearing: the persona
// vector dedicates one dimension per topic, by index.
var Topics = []string{
	"values",
	"fears",
	"ambitions",
	"relationships",
	"creativity",
	"conflict",
	"humor",
	"risk",
	"loyalty",
	"curiosity",
	"discipline",
	"empathy",
	"identity",
	"memory",
	"change",
	"purpose",
}

// questionTemplates are expanded once per topic, in order, to form the
// default catalog. The %s slot receives the topic name.
var questionTemplates = []string{
	"What role does %s play in how you see yourself?",
	"Describe a moment when %s shaped a decision you made.",
	"What would you tell a newcomer about your relationship with %s?",
	"How do you react when %s is challenged by someone you respect?",
	"What is the hardest lesson %s has taught you?",
	"If you had to give up everything related to %s, what would you keep?",
	"How has your view of %s changed over time?",
	"What do others misunderstand about your approach to %s?",
	"When does %s feel like a strength, and when a weakness?",
	"What question about %s do you wish someone would ask you?",
	"How does %s influence the way you speak with strangers?",
	"What small daily habit of yours is connected to %s?",
	"Which of your beliefs about %s would you defend under pressure?",
	"What compromise involving %s do you refuse to make?",
	"How would your closest ally describe your stance on %s?",
	"What story best illustrates how you handle %s?",
	"What do you admire in others when it comes to %s?",
	"How do you recover when %s leads you astray?",
	"What boundary around %s do you never cross?",
	"If %s were a place, what would it look like to you?",
	"What trade-off involving %s do you weigh most often?",
	"How do you want to be remembered with respect to %s?",
	"What does a perfect day look like when %s is at its center?",
	"What warning would you give your past self about %s?",
}

// DefaultCatalog builds the fixed onboarding catalog: every template
// expanded for every topic, in deterministic catalog order. IDs are stable
// ordinals starting at 1.
func DefaultCatalog() []core.Question {
	catalog := make([]core.Question, 0, len(Topics)*len(questionTemplates))
	id := 1
	for _, topic := range Topics {
		for _, tmpl := range questionTemplates {
			catalog = append(catalog, core.Question{
				ID:    id,
				Text:  fmt.Sprintf(tmpl, topic),
				Topic: topic,
			})
			id++
		}
	}
	return catalog
}
