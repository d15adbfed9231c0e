package services

import (
	"sync"
	"time"

	"kiosk/entity"

	"gorm.io/gorm"
)

// testCatalog mirrors the seeded menu so filter scenarios read like the
// real kiosk screen.
func testCatalog() *Catalog {
	type row struct {
		id          uint
		name        string
		price       int64
		category    string
		subcategory string
		allergens   []string
		vegan       bool
		vegetarian  bool
	}
	rows := []row{
		{1, "청양 통새우버거", 12900, "메인", "버거", []string{"달걀", "밀", "대두", "우유", "토마토", "새우", "조개류(굴)"}, false, false},
		{2, "치킨버거", 8900, "메인", "버거", []string{"달걀", "밀", "대두", "우유", "닭고기", "땅콩", "조개류(가리비)"}, false, false},
		{3, "데리버거", 9500, "메인", "버거", []string{"달걀", "밀", "대두", "우유", "닭고기", "조개류(가리비)"}, false, false},
		{4, "모짜렐라 버거", 10500, "메인", "버거", []string{"달걀", "밀", "대두", "우유", "쇠고기", "돼지고기"}, false, false},
		{5, "불고기버거", 11900, "메인", "버거", []string{"밀", "대두", "달걀", "우유", "토마토", "쇠고기"}, false, false},
		{6, "멕시칸 랩", 8500, "메인", "랩", []string{"달걀", "우유", "대두", "밀", "돼지고기", "쇠고기"}, false, false},
		{7, "두부 포케볼", 9900, "메인", "보울", []string{"대두", "호두"}, true, true},
		{8, "연어 포케볼", 13900, "메인", "보울", []string{"대두", "밀", "연어"}, false, false},
		{9, "로스트 닭다리살 샐러디", 11500, "메인", "샐러디", []string{"우유", "대두", "밀", "토마토", "닭고기", "쇠고기"}, false, false},
		{10, "두부 단호박 샐러디", 9500, "메인", "샐러디", []string{"대두", "밀"}, true, true},
		{11, "감자튀김", 3500, "사이드", "", []string{"대두", "토마토"}, true, true},
		{12, "치즈스틱", 4500, "사이드", "", []string{"밀", "대두", "달걀", "우유"}, false, true},
		{13, "콜라", 2000, "음료", "", nil, true, true},
		{14, "사이다", 2000, "음료", "", nil, true, true},
		{15, "아이스크림", 4500, "디저트", "", []string{"우유", "밀", "대두"}, false, true},
		{16, "팥빙수", 7500, "디저트", "", []string{"우유"}, false, true},
	}

	items := make([]entity.MenuItem, 0, len(rows))
	for _, r := range rows {
		item := entity.MenuItem{
			Model:       gorm.Model{ID: r.id},
			Name:        r.name,
			Price:       r.price,
			Category:    r.category,
			Subcategory: r.subcategory,
		}
		for _, a := range r.allergens {
			item.Allergens = append(item.Allergens, entity.Allergen{Name: a})
		}
		if r.vegan {
			item.DietTags = append(item.DietTags, entity.DietTag{Name: "vegan"})
		}
		if r.vegetarian {
			item.DietTags = append(item.DietTags, entity.DietTag{Name: "vegetarian"})
		}
		items = append(items, item)
	}

	return NewCatalog(items, []string{
		"달걀", "토마토", "새우", "조개류(굴)", "조개류(가리비)",
		"닭고기", "땅콩", "쇠고기", "돼지고기", "호두",
	})
}

// fakeScheduler collects scheduled callbacks and fires them only when a
// test says so.
type fakeScheduler struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

type fakeTimer struct {
	fn        func()
	cancelled bool
}

func newFakeScheduler() *fakeScheduler {
	return &fakeScheduler{}
}

func (f *fakeScheduler) Schedule(d time.Duration, fn func()) CancelFunc {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := &fakeTimer{fn: fn}
	f.timers = append(f.timers, t)
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		t.cancelled = true
	}
}

// fireNext runs the oldest pending callback. Returns false when nothing
// is pending.
func (f *fakeScheduler) fireNext() bool {
	f.mu.Lock()
	var next *fakeTimer
	for i, t := range f.timers {
		if !t.cancelled {
			next = t
			f.timers = append(f.timers[:i], f.timers[i+1:]...)
			break
		}
	}
	f.mu.Unlock()

	if next == nil {
		return false
	}
	next.fn()
	return true
}

// pending counts callbacks not yet fired or cancelled.
func (f *fakeScheduler) pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, t := range f.timers {
		if !t.cancelled {
			n++
		}
	}
	return n
}
