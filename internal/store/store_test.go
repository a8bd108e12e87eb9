package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"home_energy_simulator/internal/model"
	"home_energy_simulator/internal/schedule"
)

func samplePreset(name string) Preset {
	return Preset{
		Name:  name,
		Label: "Sample household",
		Household: model.Household{
			InverterCapacityKW: 5,
			BatteryCapacityKWh: 10,
			Appliances: map[model.Appliance]model.ApplianceConfig{
				model.ApplianceWashingMachine: {
					Enabled:  true,
					Schedule: schedule.Schedule{On1: "09:00", Off1: "10:30"},
				},
			},
		},
	}
}

func TestStore_AddAndGet(t *testing.T) {
	s := New()
	require.NoError(t, s.Add(samplePreset("summer")))

	p, ok := s.Get("summer")
	require.True(t, ok)
	assert.Equal(t, "summer", p.Name)
	assert.Equal(t, 5.0, p.Household.InverterCapacityKW)

	_, ok = s.Get("winter")
	assert.False(t, ok)
}

func TestStore_AddRejectsInvalid(t *testing.T) {
	s := New()

	p := samplePreset("broken")
	p.Household.BatteryCapacityKWh = 0
	err := s.Add(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")

	err = s.Add(Preset{Household: model.Household{BatteryCapacityKWh: 1}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no name")
}

func TestStore_GetReturnsCopy(t *testing.T) {
	s := New()
	require.NoError(t, s.Add(samplePreset("summer")))

	p, ok := s.Get("summer")
	require.True(t, ok)
	p.Household.Appliances[model.ApplianceOven] = model.ApplianceConfig{Enabled: true}

	again, ok := s.Get("summer")
	require.True(t, ok)
	assert.Len(t, again.Household.Appliances, 1, "stored preset unchanged")
}

func TestStore_NamesSorted(t *testing.T) {
	s := New()
	require.NoError(t, s.Add(samplePreset("winter")))
	require.NoError(t, s.Add(samplePreset("autumn")))
	require.NoError(t, s.Add(samplePreset("summer")))

	assert.Equal(t, []string{"autumn", "summer", "winter"}, s.Names())

	all := s.All()
	require.Len(t, all, 3)
	assert.Equal(t, "autumn", all[0].Name)
	assert.Equal(t, "winter", all[2].Name)
}

func TestStore_LoadDir(t *testing.T) {
	dir := t.TempDir()

	preset := `label: Sunny weekday
household:
  inverter_capacity_kw: 5.0
  battery_capacity_kwh: 10.0
  appliances:
    washing_machine:
      enabled: true
      schedule:
        on1: "09:00"
        off1: "10:30"
    ev_charger:
      enabled: true
      schedule:
        on1: "22:00"
        off1: "02:00"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sunny.yaml"), []byte(preset), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	s := New()
	n, err := s.LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	p, ok := s.Get("sunny")
	require.True(t, ok)
	assert.Equal(t, "Sunny weekday", p.Label)
	assert.Equal(t, 10.0, p.Household.BatteryCapacityKWh)
	require.Len(t, p.Household.Appliances, 2)
	assert.Equal(t, "22:00", p.Household.Appliances[model.ApplianceEVCharger].Schedule.On1)
}

func TestStore_LoadDir_BadPreset(t *testing.T) {
	dir := t.TempDir()

	bad := `label: No battery
household:
  inverter_capacity_kw: 5.0
  battery_capacity_kwh: 0
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte(bad), 0o644))

	s := New()
	_, err := s.LoadDir(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad")
}

func TestStore_LoadDir_Missing(t *testing.T) {
	s := New()
	_, err := s.LoadDir(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
