package amqp

import (
	"encoding/json"
	"time"
)

// Vendor change event names.
const (
	VendorCreated = "vendor.created"
	VendorUpdated = "vendor.updated"
	VendorDeleted = "vendor.deleted"
)

// VendorEventMessage is a lightweight notification that a vendor record
// changed. Consumers fetch the full record by its external identifier.
type VendorEventMessage struct {
	Event      string    `json:"event"`
	VendorUUID string    `json:"vendor_uuid"`
	Timestamp  time.Time `json:"timestamp"`
}

func NewVendorEventMessage(event, vendorUUID string) *VendorEventMessage {
	return &VendorEventMessage{
		Event:      event,
		VendorUUID: vendorUUID,
		Timestamp:  time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *VendorEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// VendorEventMessageFromJSON creates a message from JSON bytes.
func VendorEventMessageFromJSON(data []byte) (*VendorEventMessage, error) {
	var msg VendorEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
