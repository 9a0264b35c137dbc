package domain

// OwnerKind tells who runs a company.
type OwnerKind int

const (
	OwnerPlayer OwnerKind = iota
	OwnerNPC
)

// Owner is the owner of a company. NPC-owned companies produce a third of
// the usual amount of products.
type Owner struct {
	Kind     OwnerKind
	PlayerID int // set for player owners only
}

// PlayerOwner returns an owner for the given player.
func PlayerOwner(id int) Owner {
	return Owner{Kind: OwnerPlayer, PlayerID: id}
}

// NPCOwner returns the NPC owner.
func NPCOwner() Owner {
	return Owner{Kind: OwnerNPC}
}

// IsNPC reports whether the owner is an NPC.
func (o Owner) IsNPC() bool {
	return o.Kind == OwnerNPC
}

func (o Owner) String() string {
	if o.IsNPC() {
		return "npc"
	}
	return "player"
}
