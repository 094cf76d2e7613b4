package models

// Recommendation holds the structure for the recommendations table
type Recommendation struct {
	ID          string `json:"id" bson:"_id" dynamodbav:"id"`
	Description string `json:"description" bson:"description" dynamodbav:"description"`
	UserID      string `json:"user_id" bson:"user_id" dynamodbav:"user_id"`
	Email       string `json:"email" bson:"email" dynamodbav:"email"`
}

func (r Recommendation) GetID() string { return r.ID }

func (r *Recommendation) SetID(id string) { r.ID = id }

// Fields returns the recommendation schema
func (r Recommendation) Fields() []Field {
	return []Field{
		{Name: "description", Value: r.Description, Required: true},
		{Name: "user_id", Value: r.UserID, Required: true},
		{Name: "email", Value: r.Email, Required: true},
	}
}
