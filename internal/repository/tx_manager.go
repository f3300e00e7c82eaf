package repository

import "context"

// トランザクション内で使う約束
type TxRepos interface {
	Users() UserRepository
	Restaurants() RestaurantRepository
	Wilayas() WilayaRepository
	Activities() ActivityRepository
}

// UsecaseからTxの開始/commit/rollbackを隠す。
// 割り当てチェックと書き込みは必ずこの中で行う。
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}
