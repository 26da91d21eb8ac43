package generate

import "github.com/studytok/api/models"

var cannedQuestions = []Question{
	{
		Prompt: "What is the main topic discussed in this content?",
		Kind:   models.CardKindMultipleChoice,
		Options: []string{
			"Key concepts and important information",
			"Basic definitions only",
			"Advanced theories",
			"Historical context",
		},
		CorrectIndex: 0,
		Answer:       "The main topic covers key concepts and important information for effective studying.",
		Difficulty:   "Easy",
		Explanation:  "This content focuses on fundamental concepts that are essential for understanding the subject matter.",
	},
	{
		Prompt:      "Which concept is most important to remember?",
		Kind:        models.CardKindShortAnswer,
		Answer:      "The fundamental principles that form the foundation of this subject area.",
		Difficulty:  "Medium",
		Explanation: "Understanding the foundational principles is crucial for building deeper knowledge.",
	},
	{
		Prompt:      "How can you apply this knowledge practically?",
		Kind:        models.CardKindShortAnswer,
		Answer:      "By implementing the concepts in real-world scenarios and practicing with examples.",
		Difficulty:  "Advanced",
		Explanation: "Practical application helps solidify understanding and demonstrates mastery.",
	},
	{
		Prompt:      "What are the key relationships between the main concepts?",
		Kind:        models.CardKindShortAnswer,
		Answer:      "The concepts are interconnected through cause-and-effect relationships and build upon each other to form a comprehensive understanding.",
		Difficulty:  "Advanced",
		Explanation: "Understanding relationships helps you see the bigger picture and apply knowledge more effectively.",
	},
	{
		Prompt:      "What would happen if you changed one of the key variables?",
		Kind:        models.CardKindShortAnswer,
		Answer:      "Changing key variables would likely alter the outcomes and require adjustments to the overall approach or understanding.",
		Difficulty:  "Advanced",
		Explanation: "This type of analysis develops critical thinking and deeper comprehension of the subject matter.",
	},
}
