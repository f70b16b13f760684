package value

import "math"

// MaxBidAmount ограничивает ставки и стартовые цены. Граница ниже 2^53, чтобы
// Lua в Redis сравнивал суммы без потери точности, и помещается в NUMERIC(18,0).
const MaxBidAmount int64 = 999_999_999_999_999

// IncrementTier задаёт шаг ставки для текущей цены ниже UpperBound.
// UpperBound == 0 означает «без верхней границы».
type IncrementTier struct {
	UpperBound int64
	Step       int64
}

// IncrementSchedule — упорядоченные по возрастанию ступени; последняя
// ступень обязана быть без верхней границы.
type IncrementSchedule []IncrementTier

// DefaultIncrementSchedule: <200 → 10, [200,500) → 20, ≥500 → 25.
func DefaultIncrementSchedule() IncrementSchedule {
	return IncrementSchedule{
		{UpperBound: 200, Step: 10},
		{UpperBound: 500, Step: 20},
		{UpperBound: 0, Step: 25},
	}
}

// Increment возвращает минимальный шаг для текущей ставки.
func (s IncrementSchedule) Increment(current int64) int64 {
	for _, tier := range s {
		if tier.UpperBound == 0 || current < tier.UpperBound {
			return tier.Step
		}
	}
	return s[len(s)-1].Step
}

// MinimumNextBid возвращает наименьшую ставку, которая будет принята. Вблизи
// предела int64 результат насыщается.
func (s IncrementSchedule) MinimumNextBid(current int64) int64 {
	step := s.Increment(current)
	if current > math.MaxInt64-step {
		return math.MaxInt64
	}

	return current + step
}

// Admits сравнивает разность, а не сумму, чтобы не переполнить int64.
func (s IncrementSchedule) Admits(current, amount int64) bool {
	if amount <= current {
		return false
	}

	return amount-current >= s.Increment(current)
}

// BidAmountInRange проверяет сумму до обращения к хранилищу.
func BidAmountInRange(amount int64) bool {
	return amount > 0 && amount <= MaxBidAmount
}
