// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// DefaultBlock is the block assigned to a client record when the admin form
// omits the field.
const DefaultBlock = "A"

// Client is one property record managed by the office.
type Client struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Contact     string    `json:"contact"`
	Society     string    `json:"society"`
	PlotNo      string    `json:"plotNo"`
	Block       string    `json:"block"`
	Price       string    `json:"price"`
	Size        string    `json:"size"`
	Date        string    `json:"date"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ClientFields carries the editable fields of a client record, everything
// except the identity fields id and createdAt.
type ClientFields struct {
	Name        string
	Contact     string
	Society     string
	PlotNo      string
	Block       string
	Price       string
	Size        string
	Date        string
	Description string
}
