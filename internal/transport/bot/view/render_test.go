package view_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"auction_house/internal/domain/entity"
	"auction_house/internal/domain/value"
	"auction_house/internal/transport/bot/view"
)

func TestStatus(t *testing.T) {
	rq := require.New(t)

	rq.Contains(view.Status(entity.IdleRecord(10)), "Торги не идут")

	lot := entity.Lot{ID: uuid.New(), BasePrice: 200, Status: value.LotPending}
	record := entity.RunningRecord(lot, 7)

	text := view.Status(record)
	rq.Contains(text, lot.ID.String())
	rq.Contains(text, "ставок нет")
	rq.Contains(text, "7 с")

	leader := uuid.New()
	record.LeaderID = &leader
	record.CurrentBid = 220

	text = view.Status(record)
	rq.Contains(text, leader.String())
	rq.Contains(text, "220")
}

func TestLotsEscapesNames(t *testing.T) {
	rq := require.New(t)

	text := view.Lots([]*entity.Lot{{ID: uuid.New(), Name: "<b>Dhoni</b>", Category: "keeper", BasePrice: 300}}, 2)

	rq.Contains(text, "стр. 2")
	rq.Contains(text, "&lt;b&gt;Dhoni&lt;/b&gt;")
	rq.NotContains(text, "<b>Dhoni</b>")
}

func TestLotsKeyboard(t *testing.T) {
	tests := []struct {
		name    string
		page    int
		hasNext bool
		want    []string
	}{
		{name: "single page", page: 1},
		{name: "first of many", page: 1, hasNext: true, want: []string{"noop", "lots_page:2"}},
		{name: "middle", page: 3, hasNext: true, want: []string{"lots_page:2", "noop", "lots_page:4"}},
		{name: "last", page: 3, want: []string{"lots_page:2", "noop"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rq := require.New(t)

			keyboard := view.LotsKeyboard(tt.page, tt.hasNext)
			if tt.want == nil {
				rq.Nil(keyboard)
				return
			}

			rq.Len(keyboard.InlineKeyboard, 1)

			var got []string
			for _, button := range keyboard.InlineKeyboard[0] {
				got = append(got, button.CallbackData)
			}

			rq.Equal(tt.want, got)
		})
	}
}
