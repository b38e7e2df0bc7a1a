package memory

import (
	"sync"
	"time"

	"github.com/stimlink/savings-ledger/src/internal/domain"
)

// DB is a process-local store shared by the in-memory repositories. It backs
// STORAGE=memory and the service tests.
type DB struct {
	mu sync.RWMutex

	accounts      map[int64]domain.Account
	accountIDs    map[string]int64
	entries       map[int64][]domain.LedgerEntry
	notifications []domain.Notification
	news          []domain.News
	newsReads     map[int64]map[int64]struct{}
	contacts      []domain.ContactMessage
	staff         []domain.StaffMember

	nextAccountID      int64
	nextEntryID        int64
	nextNotificationID int64
	nextNewsID         int64
	nextContactID      int64
	nextStaffID        int64

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex

	now func() time.Time
}

func NewDB() *DB {
	return &DB{
		accounts:   make(map[int64]domain.Account),
		accountIDs: make(map[string]int64),
		entries:    make(map[int64][]domain.LedgerEntry),
		newsReads:  make(map[int64]map[int64]struct{}),
		locks:      make(map[string]*sync.Mutex),
		now:        time.Now,
	}
}

// accountLock returns the mutex of an existing account, or false when the
// account is unknown. Locks are only ever created for stored accounts.
func (db *DB) accountLock(accountNumber string) (*sync.Mutex, bool) {
	db.mu.RLock()
	_, exists := db.accountIDs[accountNumber]
	db.mu.RUnlock()
	if !exists {
		return nil, false
	}

	db.locksMu.Lock()
	defer db.locksMu.Unlock()

	lock, ok := db.locks[accountNumber]
	if !ok {
		lock = &sync.Mutex{}
		db.locks[accountNumber] = lock
	}
	return lock, true
}

func (db *DB) insertNotificationLocked(n domain.Notification) domain.Notification {
	db.nextNotificationID++
	n.ID = db.nextNotificationID
	if n.CreatedAt.IsZero() {
		n.CreatedAt = db.now()
	}
	n.CreatedAt = n.CreatedAt.UTC()
	db.notifications = append(db.notifications, n)
	return n
}
