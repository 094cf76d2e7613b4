package models

// Admin holds the structure for the admins table
type Admin struct {
	ID        string `json:"id" bson:"_id" dynamodbav:"id"`
	FirstName string `json:"first_name" bson:"first_name" dynamodbav:"first_name"`
	LastName  string `json:"last_name" bson:"last_name" dynamodbav:"last_name"`
	Email     string `json:"email" bson:"email" dynamodbav:"email"`
	Password  string `json:"password" bson:"password" dynamodbav:"password"`
}

// GetID returns the admin identifier
func (a Admin) GetID() string { return a.ID }

// SetID sets the admin identifier
func (a *Admin) SetID(id string) { a.ID = id }

// Fields returns the admin schema
func (a Admin) Fields() []Field {
	return []Field{
		{Name: "first_name", Value: a.FirstName, Required: true},
		{Name: "last_name", Value: a.LastName, Required: true},
		{Name: "email", Value: a.Email, Required: true},
		{Name: "password", Value: a.Password, Required: true},
	}
}

// Credentials is the body accepted by the authenticate operation
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
