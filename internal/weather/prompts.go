package weather

import "fmt"

const answerTemplate = "Answer the user's question from the following context: %s Question: %s"

// RenderRecord turns a record into the descriptive sentence used for retrieval.
func RenderRecord(r Record) string {
	return fmt.Sprintf(
		"In %s, the current condition is %s, with a high of %s and a low of %s. The current temperature is %s.",
		r.City, r.Condition, r.High, r.Low, r.Temperature,
	)
}

func answerMessages(context, question string) []Message {
	return []Message{{Role: RoleUser, Content: fmt.Sprintf(answerTemplate, context, question)}}
}

func classifyMessages(command string) []Message {
	return []Message{{Role: RoleSystem, Content: fmt.Sprintf(`Analyze the following command and determine the operation type (update/add, delete):
%s
Return the operation type as a JSON object with a single field "operationType" which can be "update/add" or "delete".`, command)}}
}

func updateMessages(command string) []Message {
	return []Message{{Role: RoleSystem, Content: fmt.Sprintf(`Analyze the following command to update the weather in a particular city:
%s
Context: city must start with a capital letter and should be a valid city. If the name of the city does not exist or the query is invalid then empty quotes for all fields.
high, low, and temperature must be in Celsius and formatted like 20°C.
Return the weather update analysis in the specified JSON format.`, command)}}
}

func deleteMessages(command string) []Message {
	return []Message{{Role: RoleSystem, Content: fmt.Sprintf(`Analyze the following command to delete the weather data for a particular city:
%s
Context: city must start with a capital letter and should be a valid city. If the name of the city does not exist or the query is invalid then empty quotes for all fields.
Return the city name to be deleted in the specified JSON format.`, command)}}
}
