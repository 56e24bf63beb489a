package models

import jsoniter "github.com/json-iterator/go"

// Notification is a pending exchange request. It is kept as the raw JSON the
// API sent; only the number of notifications is shown.
type Notification = jsoniter.RawMessage
