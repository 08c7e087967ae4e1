package enums

// CharacterClass выбирает набор строк в таблице прогрессии.
type CharacterClass uint8

const (
	ClassUnknown CharacterClass = iota
	ClassPlayer
	ClassGrunt
	ClassMage
	ClassArcher
	ClassBoss
)

var classToString = map[CharacterClass]string{
	ClassPlayer: "PLAYER",
	ClassGrunt:  "GRUNT",
	ClassMage:   "MAGE",
	ClassArcher: "ARCHER",
	ClassBoss:   "BOSS",
}

var classStringToType = map[string]CharacterClass{
	"PLAYER": ClassPlayer,
	"GRUNT":  ClassGrunt,
	"MAGE":   ClassMage,
	"ARCHER": ClassArcher,
	"BOSS":   ClassBoss,
}

func (c CharacterClass) String() string {
	if val, ok := classToString[c]; ok {
		return val
	}
	return "UNKNOWN"
}

func ParseCharacterClass(s string) CharacterClass {
	if val, ok := classStringToType[normalizeName(s)]; ok {
		return val
	}
	return ClassUnknown
}
