package constant

const (
	// watermill topic for in-process support events
	SupportEventsTopic = "SUPPORT_EVENTS"

	ConversationLogPath = "logs/conversation.log"
)

type Resource struct {
	Name    string
	URL     string
	Contact string
}

// CanadianResources is served as-is by the resources endpoint.
var CanadianResources = []Resource{
	{
		Name:    "Canada Suicide Prevention Service (CSPS)",
		URL:     "https://www.crisisservicescanada.ca/en/",
		Contact: "Call 1-833-456-4566 or Text 45645",
	},
	{
		Name:    "Kids Help Phone",
		URL:     "https://kidshelpphone.ca/",
		Contact: "Call 1-800-668-6868 or Text CONNECT to 686868",
	},
	{
		Name: "Mental Health Commission of Canada",
		URL:  "https://www.mentalhealthcommission.ca",
	},
	{
		Name: "Canadian Mental Health Association (CMHA)",
		URL:  "https://cmha.ca",
	},
}
