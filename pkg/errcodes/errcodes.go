package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	TimeoutExceeded     failure.ErrorCode = "TimeoutExceeded"
	Unauthorized        failure.ErrorCode = "Unauthorized"
	Forbidden           failure.ErrorCode = "Forbidden"
	ValidationError     failure.ErrorCode = "ValidationError"
	NotFound            failure.ErrorCode = "NotFound"
	InvalidPaging       failure.ErrorCode = "InvalidPaging"

	// Identity.
	InvalidRole    failure.ErrorCode = "InvalidRole"
	InvalidPartyID failure.ErrorCode = "InvalidPartyID"
	PartyNotLinked failure.ErrorCode = "PartyNotLinked"

	// Catalog.
	PartyNotFound    failure.ErrorCode = "PartyNotFound"
	PartyNameInUse   failure.ErrorCode = "PartyNameInUse"
	InvalidBalance   failure.ErrorCode = "InvalidBalance"
	InvalidLotID     failure.ErrorCode = "InvalidLotID"
	InvalidBasePrice failure.ErrorCode = "InvalidBasePrice"
	LotNotFound      failure.ErrorCode = "LotNotFound"

	// Auction lifecycle.
	LotNotPending          failure.ErrorCode = "LotNotPending"
	AuctionAlreadyRunning  failure.ErrorCode = "AuctionAlreadyRunning"
	InvalidBidAmount       failure.ErrorCode = "InvalidBidAmount"
	BidRejected            failure.ErrorCode = "BidRejected"
	InvalidSocketMessage   failure.ErrorCode = "InvalidSocketMessage"
	InsufficientFunds      failure.ErrorCode = "InsufficientFunds"
	InvalidFinalBid        failure.ErrorCode = "InvalidFinalBid"
	StateStoreUnavailable  failure.ErrorCode = "StateStoreUnavailable"
	RecordStoreUnavailable failure.ErrorCode = "RecordStoreUnavailable"
)
