package reminder

import (
	"context"
	"sort"
	"sync"

	"remindbot/internal/timerule"
)

// MemoryRepository is an in-process Repository with the same semantics as the
// Postgres one: owner foreign key, cascade on user removal, scoped delete and
// read-time timezone defaulting. It backs unit tests.
type MemoryRepository struct {
	mu        sync.Mutex
	nextID    int64
	users     map[int64]bool
	records   map[int64]reminderRecord
	timezones map[int64]string
	aliases   []map[string]timerule.Weekday
	failures  map[string]error
}

// NewMemoryRepository creates an empty repository
func NewMemoryRepository(dayAliases ...map[string]timerule.Weekday) *MemoryRepository {
	return &MemoryRepository{
		users:     make(map[int64]bool),
		records:   make(map[int64]reminderRecord),
		timezones: make(map[int64]string),
		aliases:   dayAliases,
		failures:  make(map[string]error),
	}
}

// FailOn makes the named operation return err until cleared with a nil err
func (m *MemoryRepository) FailOn(operation string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.failures, operation)
		return
	}
	m.failures[operation] = err
}

// SeedRaw stores a row exactly as given, bypassing validation, to mimic rows
// written by older schema versions. The owner is added to the allow-list.
func (m *MemoryRepository) SeedRaw(ownerID, chatID int64, day string, at interface{}, text string) (int64, error) {
	t, err := timerule.TimeOfDayFrom(at)
	if err != nil {
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[ownerID] = true
	m.nextID++
	m.records[m.nextID] = reminderRecord{
		ID:        m.nextID,
		UserID:    ownerID,
		ChatID:    chatID,
		DayOfWeek: day,
		Time:      clockTime(t),
		Text:      text,
	}
	return m.nextID, nil
}

func (m *MemoryRepository) fail(operation string) error {
	if err, ok := m.failures[operation]; ok {
		return WrapRepositoryError(err, operation)
	}
	return nil
}

func (m *MemoryRepository) Create(_ context.Context, n NewReminder) (int64, error) {
	if err := n.Validate(); err != nil {
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("create"); err != nil {
		return 0, err
	}
	if !m.users[n.OwnerID] {
		return 0, ErrForeignKeyViolation
	}

	m.nextID++
	rec := newRecord(n)
	rec.ID = m.nextID
	m.records[rec.ID] = rec
	return rec.ID, nil
}

func (m *MemoryRepository) ListByOwnerAndChat(_ context.Context, ownerID, chatID int64) ([]Reminder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("list"); err != nil {
		return nil, err
	}

	reminders := make([]Reminder, 0)
	for _, rec := range m.sortedRecords() {
		if rec.UserID != ownerID || rec.ChatID != chatID {
			continue
		}
		rem, err := toDomain(rec, m.aliases...)
		if err != nil {
			continue
		}
		reminders = append(reminders, rem)
	}
	return reminders, nil
}

func (m *MemoryRepository) Delete(_ context.Context, id, ownerID, chatID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("delete"); err != nil {
		return false, err
	}

	rec, ok := m.records[id]
	if !ok || rec.UserID != ownerID || rec.ChatID != chatID {
		return false, nil
	}
	delete(m.records, id)
	return true, nil
}

func (m *MemoryRepository) ListAllWithResolvedTimezone(_ context.Context) ([]ResolvedReminder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("list_all"); err != nil {
		return nil, err
	}

	resolved := make([]ResolvedReminder, 0, len(m.records))
	for _, rec := range m.sortedRecords() {
		rem, err := toDomain(rec, m.aliases...)
		if err != nil {
			continue
		}
		tz, ok := m.timezones[rec.UserID]
		if !ok {
			tz = timerule.DefaultLocation
		}
		resolved = append(resolved, ResolvedReminder{Reminder: rem, Timezone: tz})
	}
	return resolved, nil
}

func (m *MemoryRepository) UpsertTimezone(_ context.Context, userID int64, timezone string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("upsert_timezone"); err != nil {
		return err
	}
	m.timezones[userID] = timezone
	return nil
}

func (m *MemoryRepository) GetTimezone(_ context.Context, userID int64) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("get_timezone"); err != nil {
		return "", false, err
	}
	tz, ok := m.timezones[userID]
	return tz, ok, nil
}

// HasTimezoneRow reports whether a preference row exists for the user
func (m *MemoryRepository) HasTimezoneRow(userID int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.timezones[userID]
	return ok
}

func (m *MemoryRepository) AddAllowedUser(_ context.Context, userID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("add_user"); err != nil {
		return false, err
	}
	if m.users[userID] {
		return false, nil
	}
	m.users[userID] = true
	return true, nil
}

func (m *MemoryRepository) RemoveAllowedUser(_ context.Context, userID int64) ([]int64, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("remove_user"); err != nil {
		return nil, false, err
	}
	if !m.users[userID] {
		return nil, false, nil
	}

	var ids []int64
	for _, rec := range m.sortedRecords() {
		if rec.UserID == userID {
			ids = append(ids, rec.ID)
			delete(m.records, rec.ID)
		}
	}
	delete(m.users, userID)
	return ids, true, nil
}

func (m *MemoryRepository) IsAllowedUser(_ context.Context, userID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("is_allowed"); err != nil {
		return false, err
	}
	return m.users[userID], nil
}

func (m *MemoryRepository) ListIDsByOwner(_ context.Context, ownerID int64) ([]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("list_ids"); err != nil {
		return nil, err
	}

	var ids []int64
	for _, rec := range m.sortedRecords() {
		if rec.UserID == ownerID {
			ids = append(ids, rec.ID)
		}
	}
	return ids, nil
}

func (m *MemoryRepository) sortedRecords() []reminderRecord {
	recs := make([]reminderRecord, 0, len(m.records))
	for _, rec := range m.records {
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].ID < recs[j].ID })
	return recs
}
