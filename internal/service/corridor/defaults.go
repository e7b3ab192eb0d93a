package corridor

// karnataka is the built-in reference data for intercity travel within Karnataka.
var karnataka = ReferenceData{
	Corridors: []Corridor{
		{Name: "NH44 North Karnataka", Stops: []string{"Bengaluru", "Tumakuru", "Chitradurga", "Davangere", "Haveri", "Hubballi", "Dharwad", "Belagavi"}},
		{Name: "Bengaluru-Mysuru", Stops: []string{"Bengaluru", "Ramanagara", "Channapatna", "Mandya", "Srirangapatna", "Mysuru"}},
		{Name: "Mysuru-Chamarajanagar", Stops: []string{"Mysuru", "Nanjangud", "Chamarajanagar", "Gundlupet", "Kollegal"}},
		{Name: "Mysuru-Kodagu", Stops: []string{"Mysuru", "Hunsur", "Kushalnagar", "Madikeri", "Virajpet"}},
		{Name: "Bengaluru-Mangaluru", Stops: []string{"Bengaluru", "Ramanagara", "Hassan", "Sakleshpur", "Mangaluru"}},
		{Name: "Coastal Karnataka", Stops: []string{"Mangaluru", "Udupi", "Kundapura", "Bhatkal", "Kumta", "Karwar", "Gokarna"}},
		{Name: "North Karnataka Interior", Stops: []string{"Hubballi", "Gadag", "Koppal", "Ballari", "Hosapete", "Hampi"}},
		{Name: "Hubballi-Athani", Stops: []string{"Hubballi", "Dharwad", "Belagavi", "Gokak", "Athani"}},
		{Name: "Kalyana Karnataka", Stops: []string{"Ballari", "Raichur", "Kalaburagi", "Bidar"}},
		{Name: "Kalaburagi-Sindhanur", Stops: []string{"Kalaburagi", "Yadgir", "Raichur", "Sindhanur"}},
		{Name: "Vijayapura", Stops: []string{"Belagavi", "Bagalkot", "Vijayapura", "Kalaburagi"}},
		{Name: "Bengaluru-Kolar", Stops: []string{"Bengaluru", "Chikkaballapur", "Kolar", "KGF", "Bangarpet"}},
		{Name: "Shivamogga-Chikkamagaluru", Stops: []string{"Davangere", "Shivamogga", "Bhadravathi", "Chikkamagaluru", "Kadur"}},
		{Name: "Hassan-Shivamogga", Stops: []string{"Hassan", "Belur", "Halebidu", "Shivamogga", "Sagar"}},
		{Name: "Bengaluru-Hassan", Stops: []string{"Bengaluru", "Tumakuru", "Tiptur", "Hassan", "Arsikere"}},
	},
	Distances: []Distance{
		{"Bengaluru", "Mysuru", 150},
		{"Bengaluru", "Mangaluru", 350},
		{"Bengaluru", "Hubballi", 400},
		{"Bengaluru", "Belagavi", 500},
		{"Bengaluru", "Kalaburagi", 600},
		{"Bengaluru", "Tumakuru", 70},
		{"Bengaluru", "Hassan", 180},
		{"Bengaluru", "Davangere", 260},
		{"Bengaluru", "Chitradurga", 200},
		{"Bengaluru", "Ballari", 300},
		{"Bengaluru", "Raichur", 400},
		{"Bengaluru", "Bidar", 700},
		{"Bengaluru", "Kolar", 70},
		{"Bengaluru", "Chikkaballapur", 60},
		{"Bengaluru", "Ramanagara", 50},
		{"Bengaluru", "Mandya", 100},
		{"Bengaluru", "Chamarajanagar", 180},
		{"Bengaluru", "Madikeri", 250},
		{"Mysuru", "Madikeri", 120},
		{"Mysuru", "Chamarajanagar", 60},
		{"Mysuru", "Mandya", 45},
		{"Mysuru", "Hassan", 120},
		{"Hubballi", "Dharwad", 20},
		{"Hubballi", "Gadag", 55},
		{"Hubballi", "Belagavi", 95},
		{"Mangaluru", "Udupi", 60},
		{"Mangaluru", "Karwar", 150},
		{"Kalaburagi", "Bidar", 110},
		{"Kalaburagi", "Vijayapura", 170},
		{"Ballari", "Hosapete", 15},
		{"Ballari", "Raichur", 100},
		{"Shivamogga", "Davangere", 70},
		{"Shivamogga", "Chikkamagaluru", 85},
	},
}

// Default returns a Model over the built-in Karnataka corridors and distances.
func Default() *Model {
	m, err := New(karnataka)
	if err != nil {
		panic("corridor: built-in reference data is invalid: " + err.Error())
	}
	return m
}
