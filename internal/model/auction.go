package model

import "github.com/shopspring/decimal"

type AuctionCreated struct {
	NounID    uint64 `json:"noun_id"`
	StartTime uint64 `json:"start_time"`
	EndTime   uint64 `json:"end_time"`
	Base
}

func (AuctionCreated) EventName() string { return "AuctionCreated" }

type AuctionBid struct {
	NounID   uint64          `json:"noun_id"`
	Bidder   Account         `json:"bidder"`
	Amount   decimal.Decimal `json:"amount"`
	Extended bool            `json:"extended"`
	Base
}

func (AuctionBid) EventName() string { return "AuctionBid" }

type AuctionBidWithClientID struct {
	NounID   uint64          `json:"noun_id"`
	Amount   decimal.Decimal `json:"amount"`
	ClientID uint32          `json:"client_id"`
	Base
}

func (AuctionBidWithClientID) EventName() string { return "AuctionBidWithClientId" }

type AuctionExtended struct {
	NounID  uint64 `json:"noun_id"`
	EndTime uint64 `json:"end_time"`
	Base
}

func (AuctionExtended) EventName() string { return "AuctionExtended" }

type AuctionSettled struct {
	NounID uint64          `json:"noun_id"`
	Winner Account         `json:"winner"`
	Amount decimal.Decimal `json:"amount"`
	Base
}

func (AuctionSettled) EventName() string { return "AuctionSettled" }

type AuctionSettledWithClientID struct {
	NounID   uint64 `json:"noun_id"`
	ClientID uint32 `json:"client_id"`
	Base
}

func (AuctionSettledWithClientID) EventName() string { return "AuctionSettledWithClientId" }

type AuctionTimeBufferUpdated struct {
	TimeBuffer uint64 `json:"time_buffer"`
	Base
}

func (AuctionTimeBufferUpdated) EventName() string { return "AuctionTimeBufferUpdated" }

type AuctionReservePriceUpdated struct {
	ReservePrice decimal.Decimal `json:"reserve_price"`
	Base
}

func (AuctionReservePriceUpdated) EventName() string { return "AuctionReservePriceUpdated" }

type AuctionMinBidIncrementPercentageUpdated struct {
	MinBidIncrementPercentage uint64 `json:"min_bid_increment_percentage"`
	Base
}

func (AuctionMinBidIncrementPercentageUpdated) EventName() string {
	return "AuctionMinBidIncrementPercentageUpdated"
}
