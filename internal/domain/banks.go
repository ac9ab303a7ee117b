package domain

// Bank is one entry in the fixed directory the demo ships with.
type Bank struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// Banks is the known bank set. Recipient bank codes must come from here.
var Banks = []Bank{
	{Name: "Access Bank", Code: "ACCESS"},
	{Name: "Ecobank", Code: "ECO"},
	{Name: "Fidelity Bank", Code: "FIDELITY"},
	{Name: "First Bank of Ghana", Code: "FBN"},
	{Name: "GTBank", Code: "GTB"},
	{Name: "Sterling Bank", Code: "STERLING"},
	{Name: "UBA", Code: "UBA"},
	{Name: "Zenith Bank", Code: "ZENITH"},
	{Name: "GCB Bank", Code: "GCB"},
	{Name: "Absa Bank", Code: "ABSA"},
	{Name: "Stanbic Bank", Code: "STANBIC"},
	{Name: "Standard Chartered", Code: "SCB"},
}

// BankByCode resolves a bank from its code.
func BankByCode(code string) (Bank, bool) {
	for _, b := range Banks {
		if b.Code == code {
			return b, true
		}
	}
	return Bank{}, false
}
