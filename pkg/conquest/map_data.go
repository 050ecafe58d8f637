package conquest

// ClassicMap returns the built-in 42-territory, 6-continent world map.
// Borders are listed in one direction only; the reverse edges are added
// when the topology is assembled.
func ClassicMap() *Topology {
	topo := &Topology{
		Name: "classic",
		Continents: []TopologyContinent{
			{
				Key: "north_america", Name: "North America", Bonus: 5,
				Territories: []TopologyTerritory{
					{Key: "alaska", Name: "Alaska", Neighbors: []string{"northwest_territory", "alberta", "kamchatka"}},
					{Key: "northwest_territory", Name: "Northwest Territory", Neighbors: []string{"alberta", "ontario", "greenland"}},
					{Key: "greenland", Name: "Greenland", Neighbors: []string{"ontario", "quebec", "iceland"}},
					{Key: "alberta", Name: "Alberta", Neighbors: []string{"ontario", "western_united_states"}},
					{Key: "ontario", Name: "Ontario", Neighbors: []string{"quebec", "western_united_states", "eastern_united_states"}},
					{Key: "quebec", Name: "Quebec", Neighbors: []string{"eastern_united_states"}},
					{Key: "western_united_states", Name: "Western United States", Neighbors: []string{"eastern_united_states", "central_america"}},
					{Key: "eastern_united_states", Name: "Eastern United States", Neighbors: []string{"central_america"}},
					{Key: "central_america", Name: "Central America", Neighbors: []string{"venezuela"}},
				},
			},
			{
				Key: "south_america", Name: "South America", Bonus: 2,
				Territories: []TopologyTerritory{
					{Key: "venezuela", Name: "Venezuela", Neighbors: []string{"peru", "brazil"}},
					{Key: "peru", Name: "Peru", Neighbors: []string{"brazil", "argentina"}},
					{Key: "brazil", Name: "Brazil", Neighbors: []string{"argentina", "north_africa"}},
					{Key: "argentina", Name: "Argentina", Neighbors: nil},
				},
			},
			{
				Key: "europe", Name: "Europe", Bonus: 5,
				Territories: []TopologyTerritory{
					{Key: "iceland", Name: "Iceland", Neighbors: []string{"scandinavia", "great_britain"}},
					{Key: "scandinavia", Name: "Scandinavia", Neighbors: []string{"great_britain", "northern_europe", "ukraine"}},
					{Key: "great_britain", Name: "Great Britain", Neighbors: []string{"northern_europe", "western_europe"}},
					{Key: "northern_europe", Name: "Northern Europe", Neighbors: []string{"western_europe", "southern_europe", "ukraine"}},
					{Key: "western_europe", Name: "Western Europe", Neighbors: []string{"southern_europe", "north_africa"}},
					{Key: "southern_europe", Name: "Southern Europe", Neighbors: []string{"ukraine", "middle_east", "egypt", "north_africa"}},
					{Key: "ukraine", Name: "Ukraine", Neighbors: []string{"ural", "afghanistan", "middle_east"}},
				},
			},
			{
				Key: "africa", Name: "Africa", Bonus: 3,
				Territories: []TopologyTerritory{
					{Key: "north_africa", Name: "North Africa", Neighbors: []string{"egypt", "east_africa", "congo"}},
					{Key: "egypt", Name: "Egypt", Neighbors: []string{"east_africa", "middle_east"}},
					{Key: "east_africa", Name: "East Africa", Neighbors: []string{"congo", "south_africa", "madagascar", "middle_east"}},
					{Key: "congo", Name: "Congo", Neighbors: []string{"south_africa"}},
					{Key: "south_africa", Name: "South Africa", Neighbors: []string{"madagascar"}},
					{Key: "madagascar", Name: "Madagascar", Neighbors: nil},
				},
			},
			{
				Key: "asia", Name: "Asia", Bonus: 7,
				Territories: []TopologyTerritory{
					{Key: "ural", Name: "Ural", Neighbors: []string{"siberia", "afghanistan", "china"}},
					{Key: "siberia", Name: "Siberia", Neighbors: []string{"yakutsk", "irkutsk", "mongolia", "china"}},
					{Key: "yakutsk", Name: "Yakutsk", Neighbors: []string{"kamchatka", "irkutsk"}},
					{Key: "kamchatka", Name: "Kamchatka", Neighbors: []string{"irkutsk", "mongolia", "japan"}},
					{Key: "irkutsk", Name: "Irkutsk", Neighbors: []string{"mongolia"}},
					{Key: "mongolia", Name: "Mongolia", Neighbors: []string{"japan", "china"}},
					{Key: "japan", Name: "Japan", Neighbors: nil},
					{Key: "afghanistan", Name: "Afghanistan", Neighbors: []string{"china", "india", "middle_east"}},
					{Key: "china", Name: "China", Neighbors: []string{"india", "siam"}},
					{Key: "middle_east", Name: "Middle East", Neighbors: []string{"india"}},
					{Key: "india", Name: "India", Neighbors: []string{"siam"}},
					{Key: "siam", Name: "Siam", Neighbors: []string{"indonesia"}},
				},
			},
			{
				Key: "australia", Name: "Australia", Bonus: 2,
				Territories: []TopologyTerritory{
					{Key: "indonesia", Name: "Indonesia", Neighbors: []string{"new_guinea", "western_australia"}},
					{Key: "new_guinea", Name: "New Guinea", Neighbors: []string{"eastern_australia"}},
					{Key: "western_australia", Name: "Western Australia", Neighbors: []string{"eastern_australia"}},
					{Key: "eastern_australia", Name: "Eastern Australia", Neighbors: nil},
				},
			},
		},
	}
	topo.symmetrize()
	return topo
}
