// Package inventory models the equipment a character wears.
package inventory

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ItemSlot identifies an equipment slot. Slots are positional in EquipmentSpec.Items.
type ItemSlot int

const (
	SlotHead ItemSlot = iota
	SlotNeck
	SlotShoulder
	SlotBack
	SlotChest
	SlotWrist
	SlotHands
	SlotWaist
	SlotLegs
	SlotFeet
	SlotFinger1
	SlotFinger2
	SlotTrinket1
	SlotTrinket2
	SlotMainHand
	SlotOffHand
	SlotRanged

	// NumSlots is the number of equipment slots.
	NumSlots = int(iota)
)

var slotDisplayNames = [NumSlots]string{
	SlotHead:     "Head",
	SlotNeck:     "Neck",
	SlotShoulder: "Shoulder",
	SlotBack:     "Back",
	SlotChest:    "Chest",
	SlotWrist:    "Wrist",
	SlotHands:    "Hands",
	SlotWaist:    "Waist",
	SlotLegs:     "Legs",
	SlotFeet:     "Feet",
	SlotFinger1:  "Finger 1",
	SlotFinger2:  "Finger 2",
	SlotTrinket1: "Trinket 1",
	SlotTrinket2: "Trinket 2",
	SlotMainHand: "Main Hand",
	SlotOffHand:  "Off Hand",
	SlotRanged:   "Ranged",
}

// SlotDisplayName returns the human-readable label for a slot.
//
// Postcondition: returns the registered label, or "Slot N" when slot is out of range.
func SlotDisplayName(slot ItemSlot) string {
	if slot < 0 || int(slot) >= NumSlots {
		return fmt.Sprintf("Slot %d", int(slot))
	}
	return slotDisplayNames[slot]
}

// ItemSpec is one equipped item. A zero ID means the slot is empty.
type ItemSpec struct {
	ID           int32   `yaml:"id" json:"id,omitempty"`
	RandomSuffix int32   `yaml:"random_suffix" json:"randomSuffix,omitempty"`
	Enchant      int32   `yaml:"enchant" json:"enchant,omitempty"`
	Gems         []int32 `yaml:"gems" json:"gems,omitempty"`
	Reforging    int32   `yaml:"reforging" json:"reforging,omitempty"`
}

// EquipmentSpec lists equipped items in slot order.
type EquipmentSpec struct {
	Items []ItemSpec `yaml:"items" json:"items"`
}

// ParseEquipmentSpec decodes a gear document. JSON input is accepted since it is valid YAML.
//
// Precondition: data is a JSON or YAML document of the form {"items": [...]}.
// Postcondition: Returns the decoded spec, or a non-nil error when decoding fails or
// more items than slots are listed.
func ParseEquipmentSpec(data []byte) (EquipmentSpec, error) {
	var es EquipmentSpec
	if err := yaml.Unmarshal(data, &es); err != nil {
		return EquipmentSpec{}, fmt.Errorf("inventory: parsing equipment spec: %w", err)
	}
	if len(es.Items) > NumSlots {
		return EquipmentSpec{}, fmt.Errorf("inventory: equipment spec lists %d items, max %d", len(es.Items), NumSlots)
	}
	return es, nil
}

// Item returns the item in slot, or a zero ItemSpec when the slot is empty or out of range.
func (e EquipmentSpec) Item(slot ItemSlot) ItemSpec {
	if slot < 0 || int(slot) >= len(e.Items) {
		return ItemSpec{}
	}
	return e.Items[slot]
}

// Equipped returns the number of non-empty slots.
func (e EquipmentSpec) Equipped() int {
	n := 0
	for _, it := range e.Items {
		if it.ID != 0 {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of e.
func (e EquipmentSpec) Clone() EquipmentSpec {
	out := EquipmentSpec{Items: make([]ItemSpec, len(e.Items))}
	for i, it := range e.Items {
		it.Gems = append([]int32(nil), it.Gems...)
		out.Items[i] = it
	}
	return out
}
