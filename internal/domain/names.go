package domain

// MockRecipientNames is the demo name table. The directory mock resolves an
// account name by indexing with the last digit of the account number.
var MockRecipientNames = [10]string{
	"KWAME ASANTE",
	"CECILIA BAIDOO",
	"KWESI DADZIE",
	"ABENA MENSAH",
	"YAA BAMFO",
	"FATIMA AL-HASSAN",
	"EMMANUEL ADEYEMI",
	"AKOSUA AMPONSAH",
	"CHIMAMANDA ADICHIE",
	"JOHN OKONKWO",
}
