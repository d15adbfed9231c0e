package configs

import (
	"log"

	"kiosk/entity"

	"golang.org/x/crypto/bcrypt"
)

// SeedStaff creates the service-mode account once.
func SeedStaff() error {
	db := DB()
	username := getEnv("STAFF_USERNAME", "")
	pass := getEnv("STAFF_PASSWORD", "")
	if username == "" || pass == "" {
		log.Println("skip seeding staff: missing STAFF_USERNAME/STAFF_PASSWORD")
		return nil
	}

	var count int64
	db.Model(&entity.Staff{}).Where("username = ?", username).Count(&count)
	if count > 0 {
		log.Println("staff already exists:", username)
		return nil
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	staff := entity.Staff{
		Username: username,
		Password: string(hash),
		Role:     "staff",
	}
	return db.Create(&staff).Error
}

type seedItem struct {
	name           string
	description    string
	price          int64
	picture        string
	category       string
	subcategory    string
	isAllergyFree  bool
	isCustomizable bool
	cookingTime    int
	sodium         int
}

var seedItems = []seedItem{
	{"청양 통새우버거", "매콤한 청양고추와 통새우가 들어간 프리미엄 버거", 12900, "/spicy-shrimp-burger.png", "메인", "버거", false, true, 8, 850},
	{"치킨버거", "바삭한 치킨 패티와 신선한 야채가 들어간 클래식 버거", 8900, "/crispy-chicken-burger.png", "메인", "버거", true, true, 6, 720},
	{"데리버거", "달콤한 데리야키 소스와 치킨 패티의 조화", 9500, "/teriyaki-chicken-burger.png", "메인", "버거", true, true, 7, 680},
	{"모짜렐라 버거", "진짜 모짜렐라 치즈가 듬뿍 들어간 치즈 버거", 10500, "/melting-mozzarella-burger.png", "메인", "버거", false, true, 7, 920},
	{"불고기버거", "한국식 불고기와 신선한 야채가 들어간 프리미엄 버거", 11900, "/korean-bulgogi-burger.png", "메인", "버거", true, true, 8, 780},
	{"멕시칸 랩", "매콤한 치킨과 아보카도, 살사소스가 들어간 멕시칸 스타일 랩", 8500, "/mexican-beef-pork-wrap.png", "메인", "랩", true, true, 5, 650},
	{"두부 포케볼", "신선한 두부와 각종 야채가 들어간 건강한 포케볼", 9900, "/tofu-poke-bowl.png", "메인", "보울", true, true, 4, 420},
	{"연어 포케볼", "신선한 연어와 아보카도, 현미밥이 들어간 프리미엄 포케볼", 13900, "/salmon-poke-bowl.png", "메인", "보울", false, true, 5, 580},
	{"로스트 닭다리살 샐러디", "부드럽게 구운 닭다리살과 신선한 채소의 조화", 11500, "/roasted-chicken-salad.png", "메인", "샐러디", true, true, 6, 520},
	{"두부 단호박 샐러디", "고소한 두부와 달콤한 단호박이 들어간 건강 샐러드", 9500, "/tofu-pumpkin-salad-bowl.png", "메인", "샐러디", true, true, 3, 380},
	{"감자튀김", "바삭한 황금 감자튀김", 3500, "/golden-french-fries.png", "사이드", "", true, false, 4, 320},
	{"치즈스틱", "쫄깃한 모짜렐라 치즈스틱 5개", 4500, "/crispy-golden-mozzarella-sticks.png", "사이드", "", false, false, 5, 480},
	{"콜라", "시원한 콜라 500ml", 2000, "/refreshing-cola.png", "음료", "", true, false, 1, 15},
	{"사이다", "상쾌한 사이다 500ml", 2000, "/refreshing-sprite.png", "음료", "", true, false, 1, 20},
	{"아이스크림", "부드럽고 달콤한 프리미엄 바닐라 아이스크림", 4500, "/vanilla-ice-cream.png", "디저트", "", false, false, 1, 45},
	{"팥빙수", "달콤한 팥과 부드러운 빙수의 완벽한 조화", 7500, "/patbingsu.png", "디저트", "", true, true, 3, 25},
}

// Allergen declarations per item, 식품의약품안전처 표시 의무 기준.
// Absent name means the item declares nothing.
var seedAllergens = map[string][]string{
	"청양 통새우버거":     {"달걀", "밀", "대두", "우유", "토마토", "새우", "조개류(굴)"},
	"치킨버거":          {"달걀", "밀", "대두", "우유", "닭고기", "땅콩", "조개류(가리비)"},
	"데리버거":          {"달걀", "밀", "대두", "우유", "닭고기", "조개류(가리비)"},
	"모짜렐라 버거":       {"달걀", "밀", "대두", "우유", "쇠고기", "돼지고기"},
	"불고기버거":         {"밀", "대두", "달걀", "우유", "토마토", "쇠고기"},
	"멕시칸 랩":         {"달걀", "우유", "대두", "밀", "돼지고기", "쇠고기"},
	"연어 포케볼":        {"대두", "밀", "연어"},
	"로스트 닭다리살 샐러디": {"우유", "대두", "밀", "토마토", "닭고기", "쇠고기"},
	"두부 단호박 샐러디":    {"대두", "밀"},
	"두부 포케볼":        {"대두", "호두"},
	"감자튀김":          {"대두", "토마토"},
	"치즈스틱":          {"밀", "대두", "달걀", "우유"},
	"아이스크림":         {"우유", "밀", "대두"},
	"팥빙수":           {"우유"},
}

// Allergens offered as filter buttons on the kiosk screen.
var selectableAllergens = []string{
	"달걀", "토마토", "새우", "조개류(굴)", "조개류(가리비)",
	"닭고기", "땅콩", "쇠고기", "돼지고기", "호두",
}

var seedVegan = []string{"두부 단호박 샐러디", "두부 포케볼", "감자튀김", "콜라", "사이다"}
var seedVegetarian = []string{
	"두부 단호박 샐러디", "두부 포케볼", "감자튀김", "콜라", "사이다",
	"치즈스틱", "아이스크림", "팥빙수",
}

// SeedCatalog loads the menu reference data: items, allergen vocabulary
// and diet tags. Idempotent, keyed on names.
func SeedCatalog() error {
	db := DB()

	selectable := make(map[string]bool, len(selectableAllergens))
	for _, name := range selectableAllergens {
		selectable[name] = true
	}

	// Allergen vocabulary first: selectable tags come first so their seed
	// order matches the on-screen button order.
	allergenRows := map[string]*entity.Allergen{}
	seen := map[string]bool{}
	names := append([]string{}, selectableAllergens...)
	for _, item := range seedItems {
		for _, a := range seedAllergens[item.name] {
			if !seen[a] && !selectable[a] {
				names = append(names, a)
			}
			seen[a] = true
		}
	}
	for _, name := range names {
		row := entity.Allergen{Name: name, Selectable: selectable[name]}
		if err := db.Where(entity.Allergen{Name: name}).
			FirstOrCreate(&row).Error; err != nil {
			return err
		}
		allergenRows[name] = &row
	}

	var vegan, vegetarian entity.DietTag
	if err := db.Where(entity.DietTag{Name: "vegan"}).FirstOrCreate(&vegan, entity.DietTag{Name: "vegan"}).Error; err != nil {
		return err
	}
	if err := db.Where(entity.DietTag{Name: "vegetarian"}).FirstOrCreate(&vegetarian, entity.DietTag{Name: "vegetarian"}).Error; err != nil {
		return err
	}

	veganSet := map[string]bool{}
	for _, n := range seedVegan {
		veganSet[n] = true
	}
	vegetarianSet := map[string]bool{}
	for _, n := range seedVegetarian {
		vegetarianSet[n] = true
	}

	for _, s := range seedItems {
		item := entity.MenuItem{
			Name:           s.name,
			Description:    s.description,
			Price:          s.price,
			Picture:        s.picture,
			Category:       s.category,
			Subcategory:    s.subcategory,
			IsAllergyFree:  s.isAllergyFree,
			IsCustomizable: s.isCustomizable,
			CookingTime:    s.cookingTime,
			Sodium:         s.sodium,
		}
		if err := db.Where(entity.MenuItem{Name: s.name}).
			FirstOrCreate(&item).Error; err != nil {
			return err
		}

		tags := make([]entity.Allergen, 0, len(seedAllergens[s.name]))
		for _, a := range seedAllergens[s.name] {
			tags = append(tags, *allergenRows[a])
		}
		if err := db.Model(&item).Association("Allergens").Replace(tags); err != nil {
			return err
		}

		diets := []entity.DietTag{}
		if veganSet[s.name] {
			diets = append(diets, vegan)
		}
		if vegetarianSet[s.name] {
			diets = append(diets, vegetarian)
		}
		if err := db.Model(&item).Association("DietTags").Replace(diets); err != nil {
			return err
		}
	}

	log.Println("catalog seeded:", len(seedItems), "items")
	return nil
}
