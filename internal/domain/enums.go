package domain

type DeliveryType string

const (
	DeliveryTreatment DeliveryType = "TREATMENT"
	DeliverySetup     DeliveryType = "SETUP"
)

// ValidDeliveryTypes is the canonical set of accepted delivery type strings.
var ValidDeliveryTypes = map[string]bool{
	"TREATMENT": true, "SETUP": true,
}
