package assignment

import "github.com/JunasVee/dynamits-driver/internal/domain"

// ContactDTO carries the tap targets for reaching the package sender:
// a phone call, a text message and a WhatsApp chat.
type ContactDTO struct {
	Tel      string `json:"tel"`
	SMS      string `json:"sms"`
	WhatsApp string `json:"whatsapp"`
}

type AssignmentDTO struct {
	OrderID         string     `json:"orderId"`
	PackageID       string     `json:"packageId"`
	Description     string     `json:"description"`
	Weight          float64    `json:"weight"`
	Price           float64    `json:"price"`
	SenderName      string     `json:"senderName"`
	SenderAddress   string     `json:"senderAddress"`
	ReceiverName    string     `json:"receiverName"`
	ReceiverAddress string     `json:"receiverAddress"`
	StartedAt       string     `json:"startedAt"`
	Contact         ContactDTO `json:"contact"`
	RouteURL        string     `json:"routeUrl,omitempty"`
}

type AssignmentsResponse struct {
	Assignments []AssignmentDTO `json:"assignments"`
	Count       int             `json:"count"`
}

type MarkDoneResponse struct {
	Order       domain.Order    `json:"order"`
	Assignments []AssignmentDTO `json:"assignments"`
}

type HistoryEntryDTO struct {
	OrderID         string `json:"orderId"`
	PackageID       string `json:"packageId"`
	Description     string `json:"description"`
	ReceiverAddress string `json:"receiverAddress"`
	CompletedAt     string `json:"completedAt"`
	RouteURL        string `json:"routeUrl,omitempty"`
	Notice          string `json:"notice,omitempty"`
}

type HistoryResponse struct {
	Entries []HistoryEntryDTO `json:"entries"`
	Count   int               `json:"count"`
}
