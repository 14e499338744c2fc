package registry

import (
	"nounsIndexer/internal/contracts"
	"nounsIndexer/internal/model"
)

func governanceCoreEntries() []Entry {
	g := contracts.GovernanceCore
	return []Entry{
		define(g, 2, func(a *args) model.DAOWithdrawNounsFromEscrow {
			return model.DAOWithdrawNounsFromEscrow{
				TokenIDs: a.numbers(0),
				To:       a.account(1),
				Base:     a.base,
			}
		}),
		define(g, 5, func(a *args) model.EscrowedToFork {
			return model.EscrowedToFork{
				ForkID:      a.number32(0),
				Owner:       a.account(1),
				TokenIDs:    a.numbers(2),
				ProposalIDs: a.numbers(3),
				Reason:      a.str(4),
				Base:        a.base,
			}
		}),
		define(g, 5, func(a *args) model.ExecuteFork {
			return model.ExecuteFork{
				ForkID:           a.number32(0),
				ForkTreasury:     a.account(1),
				ForkToken:        a.account(2),
				ForkEndTimestamp: a.number(3),
				TokensInEscrow:   a.amount(4),
				Base:             a.base,
			}
		}),
		define(g, 2, func(a *args) model.ForkPeriodSet {
			return model.ForkPeriodSet{OldForkPeriod: a.amount(0), NewForkPeriod: a.amount(1), Base: a.base}
		}),
		define(g, 2, func(a *args) model.ForkThresholdSet {
			return model.ForkThresholdSet{OldForkThreshold: a.amount(0), NewForkThreshold: a.amount(1), Base: a.base}
		}),
		define(g, 5, func(a *args) model.JoinFork {
			return model.JoinFork{
				ForkID:      a.number32(0),
				Owner:       a.account(1),
				TokenIDs:    a.numbers(2),
				ProposalIDs: a.numbers(3),
				Reason:      a.str(4),
				Base:        a.base,
			}
		}),
		define(g, 1, func(a *args) model.ProposalCanceled {
			return model.ProposalCanceled{ProposalID: a.number(0), Base: a.base}
		}),
		define(g, 9, func(a *args) model.ProposalCreated {
			return model.ProposalCreated{
				ProposalID:           a.number(0),
				Proposer:             a.account(1),
				ProposalTransactions: a.transactions(2),
				StartBlock:           a.number(6),
				EndBlock:             a.number(7),
				Description:          a.str(8),
				Base:                 a.base,
			}
		}),
		define(g, 13, func(a *args) model.ProposalCreatedWithRequirements {
			return model.ProposalCreatedWithRequirements{
				ProposalID:           a.number(0),
				Proposer:             a.account(1),
				Signers:              a.accounts(2),
				ProposalTransactions: a.transactions(3),
				StartBlock:           a.number(7),
				EndBlock:             a.number(8),
				UpdatePeriodEndBlock: a.number(9),
				ProposalThreshold:    a.amount(10),
				QuorumVotes:          a.amount(11),
				Description:          a.str(12),
				Base:                 a.base,
			}
		}),
		define(g, 4, func(a *args) model.ProposalDescriptionUpdated {
			return model.ProposalDescriptionUpdated{
				ProposalID:    a.number(0),
				Proposer:      a.account(1),
				Description:   a.str(2),
				UpdateMessage: a.str(3),
				Base:          a.base,
			}
		}),
		define(g, 1, func(a *args) model.ProposalExecuted {
			return model.ProposalExecuted{ProposalID: a.number(0), Base: a.base}
		}),
		define(g, 2, func(a *args) model.ProposalObjectionPeriodSet {
			return model.ProposalObjectionPeriodSet{
				ProposalID:              a.number(0),
				ObjectionPeriodEndBlock: a.number(1),
				Base:                    a.base,
			}
		}),
		define(g, 2, func(a *args) model.ProposalQueued {
			return model.ProposalQueued{ProposalID: a.number(0), ETA: a.number(1), Base: a.base}
		}),
		define(g, 7, func(a *args) model.ProposalTransactionsUpdated {
			return model.ProposalTransactionsUpdated{
				ProposalID:           a.number(0),
				Proposer:             a.account(1),
				ProposalTransactions: a.transactions(2),
				UpdateMessage:        a.str(6),
				Base:                 a.base,
			}
		}),
		define(g, 8, func(a *args) model.ProposalUpdated {
			return model.ProposalUpdated{
				ProposalID:           a.number(0),
				Proposer:             a.account(1),
				ProposalTransactions: a.transactions(2),
				Description:          a.str(6),
				UpdateMessage:        a.str(7),
				Base:                 a.base,
			}
		}),
		define(g, 1, func(a *args) model.ProposalVetoed {
			return model.ProposalVetoed{ProposalID: a.number(0), Base: a.base}
		}),
		define(g, 2, func(a *args) model.QuorumVotesBPSSet {
			return model.QuorumVotesBPSSet{OldQuorumVotesBPS: a.amount(0), NewQuorumVotesBPS: a.amount(1), Base: a.base}
		}),
		define(g, 3, func(a *args) model.RefundableVote {
			return model.RefundableVote{
				Voter:        a.account(0),
				RefundAmount: a.amount(1),
				RefundSent:   a.flag(2),
				Base:         a.base,
			}
		}),
		define(g, 5, func(a *args) model.VoteCast {
			return model.VoteCast{
				Voter:           a.account(0),
				ProposalID:      a.number(1),
				SupportDetailed: a.direction(2),
				Votes:           a.amount(3),
				Reason:          a.str(4),
				Base:            a.base,
			}
		}),
		define(g, 2, func(a *args) model.Withdraw {
			return model.Withdraw{Amount: a.amount(0), Sent: a.flag(1), Base: a.base}
		}),
		define(g, 3, func(a *args) model.WithdrawFromForkEscrow {
			return model.WithdrawFromForkEscrow{
				ForkID:   a.number32(0),
				Owner:    a.account(1),
				TokenIDs: a.numbers(2),
				Base:     a.base,
			}
		}),
	}
}
