package registry

import (
	"nounsIndexer/internal/contracts"
	"nounsIndexer/internal/model"
)

func auctionHouseEntries() []Entry {
	g := contracts.AuctionHouse
	return []Entry{
		define(g, 3, func(a *args) model.AuctionCreated {
			return model.AuctionCreated{
				NounID:    a.number(0),
				StartTime: a.number(1),
				EndTime:   a.number(2),
				Base:      a.base,
			}
		}),
		define(g, 4, func(a *args) model.AuctionBid {
			return model.AuctionBid{
				NounID:   a.number(0),
				Bidder:   a.account(1),
				Amount:   a.amount(2),
				Extended: a.flag(3),
				Base:     a.base,
			}
		}),
		define(g, 3, func(a *args) model.AuctionBidWithClientID {
			return model.AuctionBidWithClientID{
				NounID:   a.number(0),
				Amount:   a.amount(1),
				ClientID: a.number32(2),
				Base:     a.base,
			}
		}),
		define(g, 2, func(a *args) model.AuctionExtended {
			return model.AuctionExtended{
				NounID:  a.number(0),
				EndTime: a.number(1),
				Base:    a.base,
			}
		}),
		define(g, 3, func(a *args) model.AuctionSettled {
			return model.AuctionSettled{
				NounID: a.number(0),
				Winner: a.account(1),
				Amount: a.amount(2),
				Base:   a.base,
			}
		}),
		define(g, 2, func(a *args) model.AuctionSettledWithClientID {
			return model.AuctionSettledWithClientID{
				NounID:   a.number(0),
				ClientID: a.number32(1),
				Base:     a.base,
			}
		}),
		define(g, 1, func(a *args) model.AuctionTimeBufferUpdated {
			return model.AuctionTimeBufferUpdated{TimeBuffer: a.number(0), Base: a.base}
		}),
		define(g, 1, func(a *args) model.AuctionReservePriceUpdated {
			return model.AuctionReservePriceUpdated{ReservePrice: a.amount(0), Base: a.base}
		}),
		define(g, 1, func(a *args) model.AuctionMinBidIncrementPercentageUpdated {
			return model.AuctionMinBidIncrementPercentageUpdated{MinBidIncrementPercentage: a.number(0), Base: a.base}
		}),
	}
}
