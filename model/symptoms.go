package model

// Symptom is one selectable panic symptom: a stable code persisted in
// records and the human label shown for it.
type Symptom struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// PanicSymptoms is the fixed catalog of panic symptoms. Codes already
// persisted must stay resolvable, so entries are never removed, only added.
var PanicSymptoms = []Symptom{
	{ID: "symBrustschmerzen", Label: "Schmerzen oder Beschwerden in der Brust"},
	{ID: "symSchwindel", Label: "Schwindel, Unsicherheit, Benommenheit oder der Ohnmacht nahe"},
	{ID: "symErstickung", Label: "Erstickungs- oder Würgegefühle"},
	{ID: "symHitzewallungen", Label: "Hitzewallungen oder Kälteschauer"},
	{ID: "symUebelkeit", Label: "Übelkeit oder Magen-Darmbeschwerden"},
	{ID: "symTaubheit", Label: "Taubheitsgefühle oder Kribbeln"},
	{ID: "symHerzklopfen", Label: "Herzklopfen oder beschleunigter Herzschlag"},
	{ID: "symKurzatmigkeit", Label: "Empfindung von Kurzatmigkeit oder Ersticken"},
	{ID: "symSchwitzen", Label: "Schwitzen"},
	{ID: "symZittern", Label: "Zittern oder Schwanken"},
	{ID: "symAngstSterben", Label: "Angst, zu sterben"},
	{ID: "symAngstKontrollverlust", Label: "Angst, verrückt zu werden oder die Kontrolle zu verlieren"},
	{ID: "symUnwirklichkeit", Label: "Gefühle von Unwirklichkeit oder sich losgelöst fühlen"},
}

// SymptomLabel resolves a stored symptom code to its label. Unknown codes
// come back verbatim so old records keep rendering if the catalog drifts.
func SymptomLabel(code string) string {
	for _, s := range PanicSymptoms {
		if s.ID == code {
			return s.Label
		}
	}
	return code
}
