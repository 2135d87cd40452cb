package engine

import (
	"errors"
	"fmt"
)

// Code classifies a rule violation. Every validation failure the engine can
// return carries exactly one of these; transport layers key client messages
// off the code and show Reason as the human-readable explanation.
type Code string

const (
	CodeWrongState         Code = "WRONG_STATE"
	CodeGameAlreadyStarted Code = "GAME_ALREADY_STARTED"
	CodeRoomFull           Code = "ROOM_FULL"
	CodeNotEnoughPlayers   Code = "NOT_ENOUGH_PLAYERS"
	CodeInvalidBid         Code = "INVALID_BID"
	CodeBidExceedsHand     Code = "BID_EXCEEDS_HAND"
	CodeHookViolation      Code = "HOOK_VIOLATION"
	CodeNotYourTurn        Code = "NOT_YOUR_TURN"
	CodeCardNotInHand      Code = "CARD_NOT_IN_HAND"
	CodeSuitViolation      Code = "SUIT_VIOLATION"
	CodeNoActiveTrump      Code = "NO_ACTIVE_TRUMP"
	CodeMissingTrumpColor  Code = "MISSING_TRUMP_COLOR"
	CodeRoundNotComplete   Code = "ROUND_NOT_COMPLETE"
	CodeEmptyDeck          Code = "EMPTY_DECK"
)

// RuleError is an expected, caller-recoverable validation failure. The game
// aggregate is left untouched whenever one is returned.
type RuleError struct {
	Code   Code
	Reason string
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Reason)
}

func ruleErrf(code Code, format string, args ...any) *RuleError {
	return &RuleError{Code: code, Reason: fmt.Sprintf(format, args...)}
}

// ErrCode extracts the rule code from an engine error, or "" for nil and
// non-rule errors.
func ErrCode(err error) Code {
	var re *RuleError
	if errors.As(err, &re) {
		return re.Code
	}
	return ""
}
