package registry

import (
	"nounsIndexer/internal/contracts"
	"nounsIndexer/internal/model"
)

func governanceDataEntries() []Entry {
	g := contracts.GovernanceData
	return []Entry{
		define(g, 5, func(a *args) model.CandidateFeedbackSent {
			return model.CandidateFeedbackSent{
				MsgSender:       a.account(0),
				Proposer:        a.account(1),
				Slug:            a.str(2),
				SupportDetailed: a.direction(3),
				Reason:          a.str(4),
				Base:            a.base,
			}
		}),
		define(g, 2, func(a *args) model.CreateCandidateCostSet {
			return model.CreateCandidateCostSet{
				OldCreateCandidateCost: a.amount(0),
				NewCreateCandidateCost: a.amount(1),
				Base:                   a.base,
			}
		}),
		define(g, 2, func(a *args) model.ETHWithdrawn {
			return model.ETHWithdrawn{To: a.account(0), Amount: a.amount(1), Base: a.base}
		}),
		define(g, 2, func(a *args) model.FeeRecipientSet {
			return model.FeeRecipientSet{
				OldFeeRecipient: a.account(0),
				NewFeeRecipient: a.account(1),
				Base:            a.base,
			}
		}),
		define(g, 4, func(a *args) model.FeedbackSent {
			return model.FeedbackSent{
				MsgSender:       a.account(0),
				ProposalID:      a.number(1),
				SupportDetailed: a.direction(2),
				Reason:          a.str(3),
				Base:            a.base,
			}
		}),
		define(g, 2, func(a *args) model.ProposalCandidateCanceled {
			return model.ProposalCandidateCanceled{MsgSender: a.account(0), Slug: a.str(1), Base: a.base}
		}),
		define(g, 9, func(a *args) model.ProposalCandidateCreated {
			return model.ProposalCandidateCreated{
				MsgSender:            a.account(0),
				ProposalTransactions: a.transactions(1),
				Description:          a.str(5),
				Slug:                 a.str(6),
				ProposalIDToUpdate:   a.number(7),
				EncodedProposalHash:  a.bytes(8),
				Base:                 a.base,
			}
		}),
		define(g, 10, func(a *args) model.ProposalCandidateUpdated {
			return model.ProposalCandidateUpdated{
				MsgSender:            a.account(0),
				ProposalTransactions: a.transactions(1),
				Description:          a.str(5),
				Slug:                 a.str(6),
				ProposalIDToUpdate:   a.number(7),
				EncodedProposalHash:  a.bytes(8),
				Reason:               a.str(9),
				Base:                 a.base,
			}
		}),
		define(g, 9, func(a *args) model.SignatureAdded {
			return model.SignatureAdded{
				Signer:              a.account(0),
				Sig:                 a.bytes(1),
				ExpirationTimestamp: a.number(2),
				Proposer:            a.account(3),
				Slug:                a.str(4),
				ProposalIDToUpdate:  a.number(5),
				EncodedPropHash:     a.bytes(6),
				SigDigest:           a.bytes(7),
				Reason:              a.str(8),
				Base:                a.base,
			}
		}),
		define(g, 2, func(a *args) model.UpdateCandidateCostSet {
			return model.UpdateCandidateCostSet{
				OldUpdateCandidateCost: a.amount(0),
				NewUpdateCandidateCost: a.amount(1),
				Base:                   a.base,
			}
		}),
	}
}
