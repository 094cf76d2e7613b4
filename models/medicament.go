package models

// Medicament holds the structure for the medicaments table
type Medicament struct {
	ID              string `json:"id" bson:"_id" dynamodbav:"id"`
	Title           string `json:"title" bson:"title" dynamodbav:"title"`
	Description     string `json:"description" bson:"description" dynamodbav:"description"`
	FirstEffects    string `json:"first_effects" bson:"first_effects" dynamodbav:"first_effects"`
	SideEffects     string `json:"side_effects" bson:"side_effects" dynamodbav:"side_effects"`
	RecommendedDose string `json:"recommended_dose" bson:"recommended_dose" dynamodbav:"recommended_dose"`
	Image           string `json:"image" bson:"image" dynamodbav:"image"`
}

// GetID returns the medicament identifier
func (m Medicament) GetID() string { return m.ID }

// SetID sets the medicament identifier
func (m *Medicament) SetID(id string) { m.ID = id }

// Fields returns the medicament schema
func (m Medicament) Fields() []Field {
	return []Field{
		{Name: "title", Value: m.Title, Required: true},
		{Name: "description", Value: m.Description, Required: true},
		{Name: "first_effects", Value: m.FirstEffects, Required: true},
		{Name: "side_effects", Value: m.SideEffects, Required: true},
		{Name: "recommended_dose", Value: m.RecommendedDose, Required: true},
		{Name: "image", Value: m.Image, Required: true},
	}
}

// ImageUpload is the body accepted by the medicament image upload
type ImageUpload struct {
	File     string `json:"file"`
	FileName string `json:"fileName"`
	FileType string `json:"fileType"`
}
