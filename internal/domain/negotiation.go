package domain

import (
	"fmt"
	"time"
)

type NegotiationState string

const (
	NegotiationStateRequested          NegotiationState = "REQUESTED"
	NegotiationStateProposedByCustomer NegotiationState = "PROPOSED_BY_CUSTOMER"
	NegotiationStateProposedByOperator NegotiationState = "PROPOSED_BY_OPERATOR"
	NegotiationStateAccepted           NegotiationState = "ACCEPTED"
	NegotiationStateRejected           NegotiationState = "REJECTED"
)

type ProposerRole string

const (
	ProposerCustomer ProposerRole = "CUSTOMER"
	ProposerOperator ProposerRole = "OPERATOR"
)

// TransportNegotiation is the bilateral offer/counter-offer protocol for an
// optional delivery fee, embedded in the order it belongs to. AcceptedFeeCents
// is set if and only if State is ACCEPTED.
type TransportNegotiation struct {
	State                    NegotiationState `json:"state"`
	CustomerProposedFeeCents int64            `json:"customer_proposed_fee_cents"`
	OperatorProposedFeeCents int64            `json:"operator_proposed_fee_cents"`
	AcceptedFeeCents         int64            `json:"accepted_fee_cents"`
	LastProposer             ProposerRole     `json:"last_proposer,omitempty"`
	LastProposalTime         *time.Time       `json:"last_proposal_time,omitempty"`
}

// NewTransportNegotiation starts a negotiation for an order whose customer
// opted into delivery at creation time. No fee is on the table yet.
func NewTransportNegotiation() *TransportNegotiation {
	return &TransportNegotiation{State: NegotiationStateRequested}
}

func (n *TransportNegotiation) terminal() bool {
	return n.State == NegotiationStateAccepted || n.State == NegotiationStateRejected
}

// ProposeByCustomer records a customer offer. Valid from any non-terminal
// state; there is no limit on the number of counter-proposal rounds.
func (n *TransportNegotiation) ProposeByCustomer(feeCents int64) error {
	if feeCents < 0 {
		return fmt.Errorf("%w: proposed fee must not be negative", ErrInvalidNegotiationState)
	}
	if n.terminal() {
		return fmt.Errorf("%w: negotiation already %s", ErrInvalidNegotiationState, n.State)
	}
	now := time.Now()
	n.CustomerProposedFeeCents = feeCents
	n.LastProposer = ProposerCustomer
	n.LastProposalTime = &now
	n.State = NegotiationStateProposedByCustomer
	return nil
}

// ProposeByOperator records an operator counter-offer.
func (n *TransportNegotiation) ProposeByOperator(feeCents int64) error {
	if feeCents < 0 {
		return fmt.Errorf("%w: proposed fee must not be negative", ErrInvalidNegotiationState)
	}
	if n.terminal() {
		return fmt.Errorf("%w: negotiation already %s", ErrInvalidNegotiationState, n.State)
	}
	now := time.Now()
	n.OperatorProposedFeeCents = feeCents
	n.LastProposer = ProposerOperator
	n.LastProposalTime = &now
	n.State = NegotiationStateProposedByOperator
	return nil
}

// AcceptByOperator accepts the customer's standing offer. Only valid while a
// customer proposal is on the table. Returns the accepted fee.
func (n *TransportNegotiation) AcceptByOperator() (int64, error) {
	if n.State != NegotiationStateProposedByCustomer {
		return 0, fmt.Errorf("%w: no customer proposal to accept (state %s)", ErrInvalidNegotiationState, n.State)
	}
	n.AcceptedFeeCents = n.CustomerProposedFeeCents
	n.State = NegotiationStateAccepted
	return n.AcceptedFeeCents, nil
}

// AcceptByCustomer accepts the operator's standing counter-offer.
func (n *TransportNegotiation) AcceptByCustomer() (int64, error) {
	if n.State != NegotiationStateProposedByOperator {
		return 0, fmt.Errorf("%w: no operator proposal to accept (state %s)", ErrInvalidNegotiationState, n.State)
	}
	n.AcceptedFeeCents = n.OperatorProposedFeeCents
	n.State = NegotiationStateAccepted
	return n.AcceptedFeeCents, nil
}

// RejectByOperator rejects the customer's standing offer and clears it.
// No fee is ever added to the order total on rejection.
func (n *TransportNegotiation) RejectByOperator() error {
	if n.State != NegotiationStateProposedByCustomer {
		return fmt.Errorf("%w: no customer proposal to reject (state %s)", ErrInvalidNegotiationState, n.State)
	}
	n.CustomerProposedFeeCents = 0
	n.State = NegotiationStateRejected
	return nil
}

// RejectByCustomer rejects the operator's standing counter-offer.
func (n *TransportNegotiation) RejectByCustomer() error {
	if n.State != NegotiationStateProposedByOperator {
		return fmt.Errorf("%w: no operator proposal to reject (state %s)", ErrInvalidNegotiationState, n.State)
	}
	n.State = NegotiationStateRejected
	return nil
}
