package models

// Reminder holds the structure for the reminders table. MedicamentID and UserID are
// informational references, nothing enforces that they exist.
type Reminder struct {
	ID           string `json:"id" bson:"_id" dynamodbav:"id"`
	Title        string `json:"title" bson:"title" dynamodbav:"title"`
	Description  string `json:"description" bson:"description" dynamodbav:"description"`
	Time         string `json:"time" bson:"time" dynamodbav:"time"`
	Date         string `json:"date,omitempty" bson:"date,omitempty" dynamodbav:"date,omitempty"`
	MedicamentID string `json:"medicament_id" bson:"medicament_id" dynamodbav:"medicament_id"`
	Stock        int    `json:"stock" bson:"stock" dynamodbav:"stock"`
	Status       string `json:"status,omitempty" bson:"status,omitempty" dynamodbav:"status,omitempty"`
	UserID       string `json:"user_id" bson:"user_id" dynamodbav:"user_id"`
}

// GetID returns the reminder identifier
func (r Reminder) GetID() string { return r.ID }

// SetID sets the reminder identifier
func (r *Reminder) SetID(id string) { r.ID = id }

// Fields returns the reminder schema
func (r Reminder) Fields() []Field {
	return []Field{
		{Name: "title", Value: r.Title, Required: true},
		{Name: "description", Value: r.Description, Required: true},
		{Name: "time", Value: r.Time, Required: true},
		{Name: "date", Value: r.Date},
		{Name: "medicament_id", Value: r.MedicamentID, Required: true},
		{Name: "stock", Value: r.Stock, Required: true},
		{Name: "status", Value: r.Status},
		{Name: "user_id", Value: r.UserID, Required: true},
	}
}
