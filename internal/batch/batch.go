// Package batch is the ledger of manufactured vaccine batches. Batch ids are
// dense: assigned sequentially from 0 in creation order, with no gaps and no
// reuse, so the id doubles as the position in the ledger.
package batch

import (
	"coldchain/pkg/domain"
)

// VaccineBatch is immutable after creation.
type VaccineBatch struct {
	ID           domain.BatchID  `json:"id"`
	Brand        string          `json:"brand"`
	Manufacturer domain.EntityID `json:"manufacturer"`
}
