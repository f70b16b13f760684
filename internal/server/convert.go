package server

import (
	"github.com/google/uuid"

	"auction_house/internal/domain/entity"
	"auction_house/pkg/rest"
)

func newRESTLot(lot *entity.Lot) rest.Lot {
	return rest.Lot{
		ID:             lot.ID.String(),
		Name:           lot.Name,
		Category:       lot.Category,
		BasePrice:      lot.BasePrice,
		Status:         string(lot.Status),
		WinningPartyID: uuidString(lot.WinningPartyID),
		FinalPrice:     lot.FinalPrice,
	}
}

func newRESTParty(party *entity.Party) rest.Party {
	return rest.Party{
		ID:      party.ID.String(),
		Name:    party.Name,
		Balance: party.Balance,
	}
}

func newRESTBidEntry(bid entity.BidEntry) rest.BidEntry {
	return rest.BidEntry{
		ID:        bid.ID.String(),
		Amount:    bid.Amount,
		PartyID:   bid.PartyID.String(),
		LotID:     bid.LotID.String(),
		CreatedAt: bid.CreatedAt,
	}
}

func newRESTAuctionState(record entity.AuctionRecord) rest.AuctionState {
	return rest.AuctionState{
		Status:      string(record.Status),
		ActiveLotID: uuidString(record.ActiveLotID),
		CurrentBid:  record.CurrentBid,
		LeaderID:    uuidString(record.LeaderID),
		Countdown:   record.Countdown,
	}
}

func uuidString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}

	s := id.String()

	return &s
}
