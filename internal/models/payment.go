package models

import "time"

// Payment is the append-only record of a completed charge. Amount is in
// minor currency units. Immutable once written; deletion happens only as
// checkout compensation before the call returns.
type Payment struct {
	ID            string    `bson:"_id" json:"_id"`
	Email         string    `bson:"email" json:"email"`
	ClassID       string    `bson:"classId" json:"classId"`
	ClassName     string    `bson:"className" json:"className"`
	Amount        int64     `bson:"amount" json:"amount"`
	Currency      string    `bson:"currency" json:"currency"`
	TransactionID string    `bson:"transactionId" json:"transactionId"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
}
