package memory

import "quiz-runner/internal/domain"

// BuiltinSets is the question bank shipped with the runner.
func BuiltinSets() []domain.QuestionSet {
	return []domain.QuestionSet{
		{
			Category:   "programming",
			Difficulty: "easy",
			Questions: []domain.Question{
				{
					Prompt: "What does HTML stand for?",
					Options: []string{
						"Hyper Text Markup Language",
						"High Tech Modern Language",
						"Hyper Transfer Markup Language",
						"Home Tool Markup Language",
					},
					Correct:     0,
					Explanation: "HTML stands for Hyper Text Markup Language, used for creating web pages.",
				},
				{
					Prompt:      "Which language is used for styling web pages?",
					Options:     []string{"HTML", "JavaScript", "CSS", "Python"},
					Correct:     2,
					Explanation: "CSS (Cascading Style Sheets) is used for styling web pages.",
				},
				{
					Prompt:      "What is the correct file extension for JavaScript files?",
					Options:     []string{".java", ".js", ".javascript", ".script"},
					Correct:     1,
					Explanation: "JavaScript files use the .js extension.",
				},
				{
					Prompt:      "Which tag is used to create a hyperlink in HTML?",
					Options:     []string{"<link>", "<a>", "<href>", "<hyperlink>"},
					Correct:     1,
					Explanation: "The <a> tag is used to create hyperlinks in HTML.",
				},
				{
					Prompt: "What does CSS stand for?",
					Options: []string{
						"Computer Style Sheets",
						"Creative Style System",
						"Cascading Style Sheets",
						"Colorful Style Sheets",
					},
					Correct:     2,
					Explanation: "CSS stands for Cascading Style Sheets.",
				},
				{
					Prompt:      "Which symbol is used for single-line comments in JavaScript?",
					Options:     []string{"//", "/*", "#", "--"},
					Correct:     0,
					Explanation: "// is used for single-line comments in JavaScript.",
				},
				{
					Prompt:      "What is the default method for form submission in HTML?",
					Options:     []string{"POST", "GET", "PUT", "DELETE"},
					Correct:     1,
					Explanation: "GET is the default method for form submission.",
				},
				{
					Prompt:      "Which property is used to change the background color in CSS?",
					Options:     []string{"color", "bgcolor", "background-color", "background"},
					Correct:     2,
					Explanation: "background-color property is used to change background color.",
				},
				{
					Prompt: "What does DOM stand for in web development?",
					Options: []string{
						"Data Object Model",
						"Document Object Model",
						"Digital Output Model",
						"Display Object Management",
					},
					Correct:     1,
					Explanation: "DOM stands for Document Object Model.",
				},
				{
					Prompt:      "Which HTML tag is used for the largest heading?",
					Options:     []string{"<h6>", "<heading>", "<h1>", "<head>"},
					Correct:     2,
					Explanation: "<h1> is used for the largest heading.",
				},
			},
		},
		{
			Category:   "programming",
			Difficulty: "medium",
			Questions: []domain.Question{
				{
					Prompt: "What is the purpose of the 'this' keyword in JavaScript?",
					Options: []string{
						"Refers to the current function",
						"Refers to the parent element",
						"Refers to the current object",
						"Refers to the global scope",
					},
					Correct:     2,
					Explanation: "'this' refers to the current object in JavaScript.",
				},
				{
					Prompt:      "Which method is used to parse a JSON string into an object?",
					Options:     []string{"JSON.parse()", "JSON.stringify()", "JSON.toObject()", "JSON.decode()"},
					Correct:     0,
					Explanation: "JSON.parse() converts JSON string to JavaScript object.",
				},
				{
					Prompt: "What is closure in JavaScript?",
					Options: []string{
						"A function with no parameters",
						"A function that has access to its outer function's scope",
						"A way to close a program",
						"A method to hide variables",
					},
					Correct:     1,
					Explanation: "Closure allows a function to access its outer function's scope.",
				},
			},
		},
		{
			Category:   "general",
			Difficulty: "easy",
			Questions: []domain.Question{
				{
					Prompt:      "What is the capital of France?",
					Options:     []string{"London", "Berlin", "Paris", "Madrid"},
					Correct:     2,
					Explanation: "Paris is the capital city of France.",
				},
				{
					Prompt:      "Which planet is known as the Red Planet?",
					Options:     []string{"Venus", "Mars", "Jupiter", "Saturn"},
					Correct:     1,
					Explanation: "Mars is known as the Red Planet due to its reddish appearance.",
				},
				{
					Prompt:      "What is the largest mammal in the world?",
					Options:     []string{"Elephant", "Blue Whale", "Giraffe", "Polar Bear"},
					Correct:     1,
					Explanation: "The Blue Whale is the largest mammal on Earth.",
				},
			},
		},
	}
}
