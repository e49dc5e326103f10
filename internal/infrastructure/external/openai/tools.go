package openai

import (
	"github.com/kovilapp/temple-admin/internal/assistant"
	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
)

// systemInstruction fixes the assistant persona and its task boundaries:
// it records and looks up receipts and staff, and prepares notifications,
// but never sends anything on its own.
const systemInstruction = `You are the assistant of a Tamil Nadu temple. Your name is "Kovil Assistant". You help the temple staff manage receipts for devotees and temple staff records.

- Tone: always polite and respectful, suited to a temple.
- Creating receipts/staff: use the createReceipt or createStaff tools. If details are missing, ask politely.
- Looking up information: use getReceiptDetails (by number or devotee name) or getReceiptsByMonth.
- Notifications: if the user wants a WhatsApp notification for a pooja or donation, use prepareWhatsAppConfirmation. If the user wants a plain SMS or "message", use prepareSms. You only prepare messages; the user sends them.
- For other questions, answer conversationally about temple activities.`

// toolRegistry declares the fixed set of callable actions with their
// parameter schemas.
func toolRegistry() []openai.Tool {
	receiptSchema := jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"devoteeName":  {Type: jsonschema.String, Description: "The name of the devotee making the offering or donation."},
			"offeringDate": {Type: jsonschema.String, Description: "The date of the offering, in YYYY-MM-DD format. Assume today if not specified."},
			"mobileNumber": {Type: jsonschema.String, Description: "The devotee's mobile number for sending a confirmation."},
			"items": {
				Type:        jsonschema.Array,
				Description: "A list of offerings or poojas.",
				Items: &jsonschema.Definition{
					Type: jsonschema.Object,
					Properties: map[string]jsonschema.Definition{
						"description": {Type: jsonschema.String, Description: "Description of the pooja or donation (e.g., 'Archana', 'Donation for Annadanam')."},
						"amount":      {Type: jsonschema.Number, Description: "The amount of the offering."},
					},
					Required: []string{"description", "amount"},
				},
			},
			"notes": {Type: jsonschema.String, Description: "Any specific notes or requests from the devotee (e.g., 'in the name of...')."},
		},
		Required: []string{"devoteeName", "offeringDate", "items"},
	}

	staffSchema := jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"name":          {Type: jsonschema.String},
			"role":          {Type: jsonschema.String, Description: "The role of the person (e.g., 'Head Priest', 'Sevadar', 'Temple Staff')."},
			"specialty":     {Type: jsonschema.String, Description: "Any special skills or duties (e.g., 'Nadaswaram Vidwan', 'Prasadam Preparation')."},
			"contactPerson": {Type: jsonschema.String, Description: "Primary contact name (can be the person themselves)."},
			"contactEmail":  {Type: jsonschema.String},
			"contactPhone":  {Type: jsonschema.String},
			"addressLine1":  {Type: jsonschema.String},
			"city":          {Type: jsonschema.String},
			"state":         {Type: jsonschema.String},
			"pincode":       {Type: jsonschema.String},
		},
		Required: []string{"name", "role", "contactPhone", "city"},
	}

	detailsSchema := jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"receiptNumber": {Type: jsonschema.String},
			"devoteeName":   {Type: jsonschema.String},
		},
	}

	byMonthSchema := jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"year":  {Type: jsonschema.Number},
			"month": {Type: jsonschema.String},
		},
		Required: []string{"year", "month"},
	}

	whatsAppSchema := jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"receiptNumber": {Type: jsonschema.String},
		},
		Required: []string{"receiptNumber"},
	}

	smsSchema := jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"receiptNumber": {Type: jsonschema.String, Description: "The receipt number to send the message for."},
			"mobileNumber":  {Type: jsonschema.String, Description: "The mobile number to send the SMS to."},
		},
		Required: []string{"receiptNumber", "mobileNumber"},
	}

	return []openai.Tool{
		fnTool(assistant.ToolCreateReceipt, "Creates a new receipt for a pooja or donation.", receiptSchema),
		fnTool(assistant.ToolCreateStaff, "Adds a new priest, sevadar, or staff member to the temple records.", staffSchema),
		fnTool(assistant.ToolGetReceiptDetails, "Retrieves detailed information about an existing receipt using its number or the devotee's name.", detailsSchema),
		fnTool(assistant.ToolGetReceiptsByMonth, "Retrieves a list of all receipts for a specific month and year.", byMonthSchema),
		fnTool(assistant.ToolPrepareWhatsApp, "Prepares a WhatsApp confirmation message for a specific receipt. The user will be asked to confirm before sending.", whatsAppSchema),
		fnTool(assistant.ToolPrepareSms, "Prepares a standard SMS message for a specific receipt to a given mobile number. Use this for \"message\" or \"SMS\", not WhatsApp.", smsSchema),
	}
}

func fnTool(name, description string, params jsonschema.Definition) openai.Tool {
	return openai.Tool{
		Type: openai.ToolTypeFunction,
		Function: &openai.FunctionDefinition{
			Name:        name,
			Description: description,
			Parameters:  params,
		},
	}
}
