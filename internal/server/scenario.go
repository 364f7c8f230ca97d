package server

import "github.com/starbridge/bridgeserver/internal/world"

// bootstrapScenario spawns the single hard-coded scenario (spec.md
// §4.1): four friendly bases, six enemy NPCs, two neutral NPCs, and
// three nebulae, at fixed starting positions. Player ships are not
// spawned here; they come into existence lazily on a client's first
// setShip (spec.md §3, "Lifecycle").
func bootstrapScenario(w *world.World) {
	baseSpots := [world.NumScenarioBases]world.Vec3{
		{X: 10000, Y: 0, Z: 10000},
		{X: 90000, Y: 0, Z: 10000},
		{X: 10000, Y: 0, Z: 90000},
		{X: 90000, Y: 0, Z: 90000},
	}
	for i, pos := range baseSpots {
		id := w.NextID()
		w.Bases[id] = world.NewBase(id, world.StationNames[i], pos)
	}

	enemySpots := [world.NumScenarioEnemies]world.Vec3{
		{X: 50000, Y: 0, Z: 50000},
		{X: 55000, Y: 0, Z: 48000},
		{X: 45000, Y: 0, Z: 52000},
		{X: 52000, Y: 0, Z: 55000},
		{X: 48000, Y: 0, Z: 45000},
		{X: 50000, Y: 0, Z: 42000},
	}
	for i, pos := range enemySpots {
		id := w.NextID()
		w.NPCShips[id] = world.NewNPCShip(id, enemyName(i), world.FactionEnemy, pos)
	}

	neutralSpots := [world.NumScenarioNeutral]world.Vec3{
		{X: 30000, Y: 0, Z: 60000},
		{X: 70000, Y: 0, Z: 30000},
	}
	for i, pos := range neutralSpots {
		id := w.NextID()
		w.NPCShips[id] = world.NewNPCShip(id, neutralName(i), world.FactionNeutral, pos)
	}

	nebulaSpots := [world.NumScenarioNebulae]struct {
		pos    world.Vec3
		radius float32
	}{
		{world.Vec3{X: 25000, Y: 0, Z: 25000}, 8000},
		{world.Vec3{X: 60000, Y: 0, Z: 70000}, 6000},
		{world.Vec3{X: 75000, Y: 0, Z: 20000}, 7000},
	}
	for i, n := range nebulaSpots {
		id := w.NextID()
		w.Nebulae[id] = &world.Nebula{ID: id, Position: n.pos, NebulaType: i % 2, Radius: n.radius}
	}
}

func enemyName(i int) string {
	names := [world.NumScenarioEnemies]string{
		"Raider One", "Raider Two", "Raider Three", "Raider Four", "Raider Five", "Raider Six",
	}
	return names[i]
}

func neutralName(i int) string {
	names := [world.NumScenarioNeutral]string{"Freighter Osprey", "Freighter Gull"}
	return names[i]
}
