package registry

import (
	"nounsIndexer/internal/contracts"
	"nounsIndexer/internal/model"
)

func tokenEntries() []Entry {
	g := contracts.Token
	return []Entry{
		define(g, 3, func(a *args) model.Approval {
			return model.Approval{Owner: a.account(0), Approved: a.account(1), TokenID: a.number(2), Base: a.base}
		}),
		define(g, 3, func(a *args) model.ApprovalForAll {
			return model.ApprovalForAll{Owner: a.account(0), Operator: a.account(1), Approved: a.flag(2), Base: a.base}
		}),
		define(g, 3, func(a *args) model.DelegateChanged {
			return model.DelegateChanged{
				Delegator:    a.account(0),
				FromDelegate: a.account(1),
				ToDelegate:   a.account(2),
				Base:         a.base,
			}
		}),
		define(g, 3, func(a *args) model.DelegateVotesChanged {
			return model.DelegateVotesChanged{
				Delegate:        a.account(0),
				PreviousBalance: a.amount(1),
				NewBalance:      a.amount(2),
				Base:            a.base,
			}
		}),
		define(g, 1, func(a *args) model.DescriptorUpdated {
			return model.DescriptorUpdated{Descriptor: a.account(0), Base: a.base}
		}),
		define(g, 1, func(a *args) model.MinterUpdated {
			return model.MinterUpdated{Minter: a.account(0), Base: a.base}
		}),
		define(g, 1, func(a *args) model.NounBurned {
			return model.NounBurned{NounID: a.number(0), Base: a.base}
		}),
		define(g, 2, func(a *args) model.NounCreated {
			return model.NounCreated{NounID: a.number(0), Seed: a.seed(1), Base: a.base}
		}),
		define(g, 1, func(a *args) model.NoundersDAOUpdated {
			return model.NoundersDAOUpdated{NoundersDAO: a.account(0), Base: a.base}
		}),
		define(g, 1, func(a *args) model.SeederUpdated {
			return model.SeederUpdated{Seeder: a.account(0), Base: a.base}
		}),
		define(g, 3, func(a *args) model.Transfer {
			return model.Transfer{From: a.account(0), To: a.account(1), TokenID: a.number(2), Base: a.base}
		}),
	}
}
