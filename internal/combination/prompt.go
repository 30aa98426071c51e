package combination

import "fmt"

const wordPromptFormat = "You help people craft new things by combining two words into a new word. " +
	"You must answer with exactly one thing and you must not use the words %[1]s and %[2]s as part of your answer. " +
	"The words %[1]s and %[2]s may NOT be part of the answer. " +
	"No sentences, no phrases, no multiple words, no punctuation, no special characters, no numbers, no emojis, no URLs, no code. " +
	"The answer has to be a noun. " +
	"The order of both words does not matter, both are equally important. " +
	"The answer can either be a combination of the words or the role of one word in relation to the other. " +
	"Answers can be things, materials, people, animals, occupations, food, places, objects, emotions, events, concepts, natural phenomena, vehicles, plants and anything else that is a noun. " +
	"Reply with the result of what would happen if you combine %[1]s and %[2]s. " +
	"Respond in JSON format with a 'result' key."

const emojiPromptFormat = "Reply with one emoji for the word: %s. " +
	"Respond in JSON format with an 'emoji' key containing a single emoji character."

func wordPrompt(pair Pair) string {
	return fmt.Sprintf(wordPromptFormat, pair.First, pair.Second)
}

func emojiPrompt(word string) string {
	return fmt.Sprintf(emojiPromptFormat, word)
}
