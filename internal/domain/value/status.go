package value

// AuctionStatus — статус записи аукциона в быстром хранилище.
type AuctionStatus string

const (
	AuctionIdle     AuctionStatus = "IDLE"
	AuctionRunning  AuctionStatus = "RUNNING"
	AuctionFinished AuctionStatus = "FINISHED"
)

// LotStatus — статус лота в основной базе.
type LotStatus string

const (
	LotPending LotStatus = "PENDING"
	LotSold    LotStatus = "SOLD"
	LotUnsold  LotStatus = "UNSOLD"
)
