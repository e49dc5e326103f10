package assistant

// Names of the callable actions in the fixed tool registry. The language
// model selects at most one per turn; the engine consumes only the first.
const (
	ToolCreateReceipt      = "createReceipt"
	ToolCreateStaff        = "createStaff"
	ToolGetReceiptDetails  = "getReceiptDetails"
	ToolGetReceiptsByMonth = "getReceiptsByMonth"
	ToolPrepareWhatsApp    = "prepareWhatsAppConfirmation"
	ToolPrepareSms         = "prepareSms"
)
