package extract

// SystemInstruction primes the model for structured extraction.
const SystemInstruction = "You are a crypto data extractor. Extract the Project Name, " +
	"a 1-sentence description of the required action, and a list of Venture Capital " +
	"investors mentioned. Output ONLY in valid JSON format."

// BuildPrompt wraps the raw post in the extraction request.
func BuildPrompt(rawText string) string {
	return "Extract from the following raw post and return valid JSON with exactly these keys: " +
		`{"project": str, "action": str, "investors": list}. ` +
		"Do not include markdown or extra commentary.\n\n" +
		"RAW_POST:\n" + rawText
}
