package catalog

// cards is the fixed deck. IDs are stable and dense from 1.
var cards = []Card{
	{
		ID:        1,
		Category:  CategoryPhysical,
		Name:      "Inverse-Square Spike",
		Cost:      9,
		Condition: ConditionSilence,
		Logic:     "Radio waves dissipate at a much higher rate. Interstellar comms become white noise within 1 light-year.",
		Tip:       "Prevents detection across distances.",
		Art: []string{
			"░░▓▓▓▓▓░░",
			"░▓▓╳╳╳▓▓░",
			"▓▓╳⚡╳▓▓",
			"▓╳⚡📡⚡╳▓",
			"▓▓╳⚡╳▓▓",
			"░▓▓╳╳╳▓▓░",
			"░░▓▓▓▓▓░░",
		},
	},
	{
		ID:        2,
		Category:  CategoryPhysical,
		Name:      "The Iron Desert",
		Cost:      8,
		Condition: ConditionScale,
		Logic:     "Heavy elements (needed for tech) are rare. Civs get stuck in a \"Bronze Age\" forever.",
		Tip:       "Limits technological advancement timelines.",
		Art: []string{
			"▓▓░░░░▓▓",
			"▓⛏️░░⛏️▓",
			"░░🔒Fe🔒░░",
			"░⚙️░✗░⚙️░",
			"▓▓░░░░▓▓",
		},
	},
	{
		ID:        3,
		Category:  CategoryPhysical,
		Name:      "High-G Threshold",
		Cost:      7,
		Condition: ConditionVariance,
		Logic:     "Planet gravity is 3x Earth's. Chemical rockets are physically incapable of reaching orbit.",
		Tip:       "Works regardless of species differences.",
		Art: []string{
			"▼▼▼▼▼▼▼▼",
			"░▼▼▼▼▼▼░",
			"░░🚀▼▼░░",
			"░░░▼▼░░░",
			"═══════",
		},
	},
	{
		ID:        4,
		Category:  CategoryPhysical,
		Name:      "Isotope Instability",
		Cost:      6,
		Condition: ConditionLogic,
		Logic:     "Fissile materials are highly volatile. Nuclear power almost always leads to planetary disaster.",
		Tip:       "Based on known physics principles.",
		Art: []string{
			"░░░☢️░░░",
			"░▓💥▓░",
			"▓💥⚛️💥▓",
			"░▓💥▓░",
			"░░░⚠️░░░",
		},
	},
	{
		ID:        5,
		Category:  CategoryPhysical,
		Name:      "The Great Cold",
		Cost:      5,
		Condition: ConditionUniversality,
		Logic:     "Background radiation is lower. Chemical evolution is 10x slower; life rarely reaches complexity.",
		Tip:       "Universal constant affecting all life.",
		Art: []string{
			"❄️░░░░❄️",
			"░░🧬?░░",
			"░⏱️❄️⏱️░",
			"❄️░░░░❄️",
		},
	},
	{
		ID:        6,
		Category:  CategoryPhysical,
		Name:      "Magneto-Static Fog",
		Cost:      5,
		Condition: ConditionSilence,
		Logic:     "Constant solar flares create a \"static\" blanket around planets, blocking outgoing signals.",
		Tip:       "Masks electromagnetic transmissions.",
		Art: []string{
			"░░☀️⚡░░",
			"⚡⚡⚡⚡⚡",
			"░📡╳╳╳░",
			"⚡⚡⚡⚡⚡",
		},
	},
	{
		ID:        7,
		Category:  CategoryPhysical,
		Name:      "Kessler Magnet",
		Cost:      4,
		Condition: ConditionScale,
		Logic:     "High orbital debris density. The first satellite launch triggers a cascade that traps them for eons.",
		Tip:       "Long-lasting barrier to expansion.",
		Art: []string{
			"•░•░•░•░•",
			"░🛰️💥🛰️░",
			"•💥•💥•",
			"•░•░•░•░•",
		},
	},
	{
		ID:        8,
		Category:  CategoryPhysical,
		Name:      "Diluted Uranium",
		Cost:      4,
		Condition: ConditionVariance,
		Logic:     "Makes the \"Atomic Age\" incredibly difficult to start, favoring long-term coal/oil stagnation.",
		Tip:       "Affects civilizations differently.",
		Art: []string{
			"░░░U?░░░",
			"░⛏️▓▓⛏️░",
			"▓▓💨💨▓▓",
			"░░░░░░░░",
		},
	},
	{
		ID:        9,
		Category:  CategoryPhysical,
		Name:      "Low-Density Vacuum",
		Cost:      3,
		Condition: ConditionScale,
		Logic:     "Space is \"emptier.\" Ion drives and solar sails provide 90% less thrust.",
		Tip:       "Constrains propulsion methods over time.",
		Art: []string{
			"∅∅∅∅∅∅∅",
			"→→→→→?",
			"∅∅∅∅∅∅∅",
		},
	},
	{
		ID:        10,
		Category:  CategoryPhysical,
		Name:      "Star-Clock Decay",
		Cost:      7,
		Condition: ConditionScale,
		Logic:     "Stars in this universe burn out 20% faster. Time for evolution is cut short.",
		Tip:       "Limits temporal windows for development.",
		Art: []string{
			"░░☀️☀️░░",
			"░⏱️↓⏱️░",
			"⚰️▓▓▓⚰️",
			"░░░░░░░░",
		},
	},
	{
		ID:        11,
		Category:  CategoryBiological,
		Name:      "Mitochondrial Ego",
		Cost:      8,
		Condition: ConditionUniversality,
		Logic:     "Simple cells never learn to cooperate. Life stays as \"sludge\" for 5 billion years.",
		Tip:       "Applies to all carbon-based life.",
		Art: []string{
			"░🦠░╳░🦠░",
			"╳░╳🤝╳░╳",
			"░🦠░╳░🦠░",
		},
	},
	{
		ID:        12,
		Category:  CategoryBiological,
		Name:      "The Oxygen Ceiling",
		Cost:      6,
		Condition: ConditionVariance,
		Logic:     "Atmosphere cannot support large, energy-hungry brains. High IQ is biologically \"expensive.\"",
		Tip:       "Variable impact on different species.",
		Art: []string{
			"O₂ ▓▓ O₂",
			"░🧠↓🧠░",
			"⚡?✗?⚡",
		},
	},
	{
		ID:        13,
		Category:  CategoryBiological,
		Name:      "Short Telomeres",
		Cost:      5,
		Condition: ConditionScale,
		Logic:     "Intelligent life dies of old age by 20. Wisdom cannot be passed down; tech never compounds.",
		Tip:       "Persistent across generations.",
		Art: []string{
			"🧬━━━⏱️",
			"▓▓⚠️⚠️▓▓",
			"░💀░░💀░",
		},
	},
	{
		ID:        14,
		Category:  CategoryBiological,
		Name:      "The Boredom Gene",
		Cost:      7,
		Condition: ConditionSilence,
		Logic:     "Intelligence evolves as a tool for \"Internal Simulation\" (imagination) rather than \"External Mastery.\"",
		Tip:       "Reduces observable expansion.",
		Art: []string{
			"░💭💭💭░",
			"▓🎨▓🎨▓",
			"░🚀✗✗░",
		},
	},
	{
		ID:        15,
		Category:  CategoryBiological,
		Name:      "Fragile Senses",
		Cost:      4,
		Condition: ConditionScale,
		Logic:     "Space radiation/Zero-G is 100x more lethal to this universe's biology.",
		Tip:       "Enduring biological limitation.",
		Art: []string{
			"☢️▓▓▓☢️",
			"░👁️💥👁️░",
			"░░🧬✗░░",
		},
	},
	{
		ID:        16,
		Category:  CategoryBiological,
		Name:      "Space Virus",
		Cost:      4,
		Condition: ConditionNone,
		Logic:     "Deadly pathogen emerges when civilizations attempt space travel.",
		Tip:       "May only affect specific lineages.",
		Art: []string{
			"🦠░🦠░🦠",
			"░🌍💀🌍░",
			"🦠░🦠░🦠",
		},
		RedHerring: true,
	},
	{
		ID:        17,
		Category:  CategoryBiological,
		Name:      "Hyper-Specialist",
		Cost:      3,
		Condition: ConditionVariance,
		Logic:     "Species are so tied to their specific biome they refuse to leave their home valleys.",
		Tip:       "Some species more adaptive than others.",
		Art: []string{
			"🌳▓▓▓🌳",
			"░🦎🏠🦎░",
			"▓▓▓▓▓▓▓",
		},
	},
	{
		ID:        18,
		Category:  CategoryBiological,
		Name:      "Slow Metamorphosis",
		Cost:      4,
		Condition: ConditionScale,
		Logic:     "It takes 200 years for an individual to reach \"adulthood.\" Progress is glacial.",
		Tip:       "Slows development across eons.",
		Art: []string{
			"░🐛━━━►",
			"⏱️⏱️⏱️⏱️",
			"━━━━►🦋",
		},
	},
	{
		ID:        19,
		Category:  CategoryBiological,
		Name:      "The Peace Gene",
		Cost:      5,
		Condition: ConditionScale,
		Logic:     "Total lack of \"Expansionist Drive.\" Species is content to sit in a garden forever.",
		Tip:       "Sustainable across time.",
		Art: []string{
			"░🧬☮️🧬░",
			"🌱░░░🌱",
			"░🏡▓🏡░",
		},
	},
	{
		ID:        20,
		Category:  CategoryBiological,
		Name:      "Rare Eukaryotes",
		Cost:      9,
		Condition: ConditionUniversality,
		Logic:     "The jump to complex cells is a 1-in-a-trillion accident.",
		Tip:       "Universal biological bottleneck.",
		Art: []string{
			"░░🔬░░",
			"░1⁄∞░",
			"🦠░░░🦠",
		},
	},
	{
		ID:        21,
		Category:  CategorySocietal,
		Name:      "The Digital Lure",
		Cost:      8,
		Condition: ConditionSilence,
		Logic:     "VR is easier to build than rockets. Civs \"upload\" and vanish into their own servers.",
		Tip:       "Invisible to external observers.",
		Art: []string{
			"░💻🌐💻░",
			"▓▓👤?▓▓",
			"░░░∅░░░",
		},
	},
	{
		ID:        22,
		Category:  CategorySocietal,
		Name:      "The Moloch Trap",
		Cost:      7,
		Condition: ConditionVariance,
		Logic:     "Competitive Game Theory ensures they always build nukes before they build a global government.",
		Tip:       "Different outcomes for different societies.",
		Art: []string{
			"░⚔️╳⚔️░",
			"🏛️░✗░🏛️",
			"░░☢️☢️░░",
		},
	},
	{
		ID:        23,
		Category:  CategorySocietal,
		Name:      "Fossil Fuel Desert",
		Cost:      6,
		Condition: ConditionScale,
		Logic:     "No \"easy energy\" phase. They can't bridge the gap from wood to solar.",
		Tip:       "Long-term energy constraint.",
		Art: []string{
			"░⛽✗⛽░",
			"🪵→?→☀️",
			"░░░░░░░░",
		},
	},
	{
		ID:        24,
		Category:  CategorySocietal,
		Name:      "Stewardship Ethic",
		Cost:      5,
		Condition: ConditionSilence,
		Logic:     "Culture evolves to view \"leaving the cradle\" as a supreme religious sin.",
		Tip:       "Keeps civilizations quiet.",
		Art: []string{
			"░░🙏░░",
			"░🌍▓🌍░",
			"░🚀✗✗░",
		},
	},
	{
		ID:        25,
		Category:  CategorySocietal,
		Name:      "Post-Truth Decay",
		Cost:      5,
		Condition: ConditionLogic,
		Logic:     "Information tech leads to total societal collapse due to loss of shared reality.",
		Tip:       "Follows logical progression.",
		Art: []string{
			"📱▓▓▓📱",
			"🗣️❓❓🗣️",
			"░🏛️💥💥░",
		},
	},
	{
		ID:        26,
		Category:  CategorySocietal,
		Name:      "Global War",
		Cost:      4,
		Condition: ConditionNone,
		Logic:     "Inevitable large-scale conflict destroys technological civilizations.",
		Tip:       "Survivors often rebuild stronger.",
		Art: []string{
			"⚔️░⚔️░⚔️",
			"░🌍💥🌍░",
			"☢️░░░☢️",
		},
		RedHerring: true,
	},
	{
		ID:        27,
		Category:  CategorySocietal,
		Name:      "Anti-Science Bias",
		Cost:      4,
		Condition: ConditionSilence,
		Logic:     "Curiosity is culturally suppressed. Engineers are low-status; priests are high-status.",
		Tip:       "Reduces technological signatures.",
		Art: []string{
			"░📚✗✗░",
			"▓🙏▓🙏▓",
			"░🔬░░░",
		},
	},
	{
		ID:        28,
		Category:  CategorySocietal,
		Name:      "Hedonic Treadmill",
		Cost:      3,
		Condition: ConditionUniversality,
		Logic:     "Once basic needs are met, the species stops innovating and plateaus.",
		Tip:       "Common across intelligent species.",
		Art: []string{
			"░🍕😊🍕░",
			"▓▓💤▓▓",
			"░░░░░░░░",
		},
	},
	{
		ID:        29,
		Category:  CategorySocietal,
		Name:      "Resource Exhaustion",
		Cost:      6,
		Condition: ConditionScale,
		Logic:     "Planetary resources run out exactly 50 years before Interstellar tech is ready.",
		Tip:       "Long-term timing constraint.",
		Art: []string{
			"⛏️▓▓▓⛏️",
			"🌍💨💨💨",
			"░🚀✗✗░",
		},
	},
	{
		ID:        30,
		Category:  CategorySocietal,
		Name:      "The Hermit Mindset",
		Cost:      4,
		Condition: ConditionSilence,
		Logic:     "Natural paranoia. Every civ assumes the stars are dangerous and stays quiet.",
		Tip:       "Ensures galactic silence.",
		Art: []string{
			"░░👁️░░",
			"░🌌🌌🌌░",
			"░░🤫░░",
		},
	},
	{
		ID:        31,
		Category:  CategoryPredators,
		Name:      "Berserker Probes",
		Cost:      10,
		Condition: ConditionSilence,
		Logic:     "Automated sentinels destroy any planet that emits a Type 1 radio signature.",
		Tip:       "Enforces complete silence.",
		Art: []string{
			"░░🛸░░",
			"📡⚡💥⚡📡",
			"▓▓▓▓▓",
		},
	},
	{
		ID:        32,
		Category:  CategoryPredators,
		Name:      "Dark Forest Echo",
		Cost:      7,
		Condition: ConditionSilence,
		Logic:     "A galaxy-wide broadcast that sounds like a dying scream. It scares everyone into hiding.",
		Tip:       "Creates universal quiet.",
		Art: []string{
			"░📢📢📢░",
			"😱▓▓▓😱",
			"░░🤫🤫░░",
		},
	},
	{
		ID:        33,
		Category:  CategoryPredators,
		Name:      "Vacuum Decayer",
		Cost:      9,
		Condition: ConditionLogic,
		Logic:     "High-energy physics experiments trigger a local collapse of space, deleting the system.",
		Tip:       "Scientifically plausible consequence.",
		Art: []string{
			"░░⚛️⚛️░░",
			"▓💥💥💥▓",
			"░░🕳️░░",
		},
	},
	{
		ID:        34,
		Category:  CategoryPredators,
		Name:      "Nanobot Shroud",
		Cost:      6,
		Condition: ConditionSilence,
		Logic:     "Tiny dust particles surround stars, acting as a \"One-Way Mirror\" for light.",
		Tip:       "Hides stellar activity.",
		Art: []string{
			"•••••••",
			"░☀️→🌑░",
			"•••••••",
		},
	},
	{
		ID:        35,
		Category:  CategoryPredators,
		Name:      "The False Beacon",
		Cost:      5,
		Condition: ConditionVariance,
		Logic:     "A lure that pulls civs toward a black hole under the guise of an \"Alien Signal.\"",
		Tip:       "Affects curious species differently.",
		Art: []string{
			"░░📡░░",
			"░➡️➡️➡️░",
			"░░⚫░░",
		},
	},
	{
		ID:        36,
		Category:  CategoryPredators,
		Name:      "Alien War",
		Cost:      8,
		Condition: ConditionNone,
		Logic:     "Aggressive alien species hunt and destroy emerging civilizations.",
		Tip:       "Creates detectable artifacts and noise.",
		Art: []string{
			"👽⚔️👽⚔️",
			"▓💥💥▓",
			"░░░░░░░",
		},
		RedHerring: true,
	},
	{
		ID:        37,
		Category:  CategoryPredators,
		Name:      "The Memory Wipe",
		Cost:      7,
		Condition: ConditionScale,
		Logic:     "Periodic neutrino bursts erase magnetic storage/digital memory across the galaxy.",
		Tip:       "Recurring constraint over time.",
		Art: []string{
			"ν~~~~~ν",
			"░💾💥💾░",
			"░░🧠?░░",
		},
	},
	{
		ID:        38,
		Category:  CategoryPredators,
		Name:      "Quarantine Fleet",
		Cost:      6,
		Condition: ConditionScale,
		Logic:     "Invisible ships that destroy anything that crosses the \"Hill Sphere\" of a planet.",
		Tip:       "Permanent containment mechanism.",
		Art: []string{
			"░🛸🛸🛸░",
			"▓🌍⭕▓",
			"░░✗✗░░",
		},
	},
	{
		ID:        39,
		Category:  CategoryPredators,
		Name:      "Radio Eaters",
		Cost:      5,
		Condition: ConditionSilence,
		Logic:     "Space-born organisms that feed on electromagnetic radiation, blurring signals.",
		Tip:       "Obscures all transmissions.",
		Art: []string{
			"░📡📡📡░",
			"🦠🦠🦠🦠",
			"░🌫️🌫️🌫️░",
		},
	},
	{
		ID:        40,
		Category:  CategoryPredators,
		Name:      "Solar Syphon",
		Cost:      8,
		Condition: ConditionLogic,
		Logic:     "If a Dyson Swarm is detected, the probe forces the star into a premature supernova.",
		Tip:       "Logical punishment for mega-engineering.",
		Art: []string{
			"░░⚙️░░",
			"⚙️☀️💥☀️⚙️",
			"░░░░░░░░",
		},
	},
	{
		ID:        41,
		Category:  CategoryOther,
		Name:      "Space Monsters",
		Cost:      6,
		Condition: ConditionNone,
		Logic:     "Giant creatures patrol the void, attacking starships.",
		Tip:       "Doesn't prevent radio signals.",
		Art: []string{
			"░░👾👾░░",
			"▓🌌🌌▓",
			"░😱░😱░",
		},
		RedHerring: true,
	},
	{
		ID:        42,
		Category:  CategoryOther,
		Name:      "The Invisible Wall",
		Cost:      10,
		Condition: ConditionNone,
		Logic:     "A mysterious barrier prevents travel beyond local systems.",
		Tip:       "Unexplainable mechanism.",
		Art: []string{
			"░🧱?🧱░",
			"🌌▓▓▓🌌",
			"░✨░✨░",
		},
		RedHerring: true,
	},
	{
		ID:        43,
		Category:  CategoryOther,
		Name:      "The Sun Stealer",
		Cost:      9,
		Condition: ConditionNone,
		Logic:     "Advanced entities harvest stars, causing systems to go dark.",
		Tip:       "Highly visible to others.",
		Art: []string{
			"░░☀️☀️░░",
			"░💨💨💨░",
			"░░🌑🌑░░",
		},
		RedHerring: true,
	},
	{
		ID:        44,
		Category:  CategoryOther,
		Name:      "Loneliness Plague",
		Cost:      5,
		Condition: ConditionNone,
		Logic:     "Isolation in space causes psychological collapse.",
		Tip:       "Assumes all beings feel loneliness.",
		Art: []string{
			"░░💔💔░░",
			"▓😢😢▓",
			"░░💀░░",
		},
		RedHerring: true,
	},
	{
		ID:        45,
		Category:  CategoryOther,
		Name:      "Meteor Rain",
		Cost:      7,
		Condition: ConditionNone,
		Logic:     "Constant asteroid bombardment prevents civilizations from thriving.",
		Tip:       "Advanced civs can deflect.",
		Art: []string{
			"☄️░☄️░☄️",
			"░🌍💥🌍░",
			"☄️░☄️░☄️",
		},
		RedHerring: true,
	},
	{
		ID:        46,
		Category:  CategoryOther,
		Name:      "The God Finger",
		Cost:      10,
		Condition: ConditionNone,
		Logic:     "A divine being manually intervenes to prevent expansion.",
		Tip:       "Requires continuous oversight.",
		Art: []string{
			"░░☝️☝️░░",
			"░░👁️░░",
			"░░🌍░░",
		},
		RedHerring: true,
	},
	{
		ID:        47,
		Category:  CategoryOther,
		Name:      "Zero-IQ Galaxy",
		Cost:      8,
		Condition: ConditionNone,
		Logic:     "Intelligence never evolves anywhere in the universe.",
		Tip:       "Contradicts goal of allowing life.",
		Art: []string{
			"░🧠✗✗░",
			"▓🌌🌌▓",
			"░░💤░░",
		},
		RedHerring: true,
	},
	{
		ID:        48,
		Category:  CategoryOther,
		Name:      "The Alien Abduction",
		Cost:      7,
		Condition: ConditionNone,
		Logic:     "Advanced aliens kidnap emerging civilizations.",
		Tip:       "Just relocates the problem.",
		Art: []string{
			"░░👽👽░░",
			"░🛸↑🛸░",
			"░░❓❓░░",
		},
		RedHerring: true,
	},
	{
		ID:        49,
		Category:  CategoryOther,
		Name:      "The Peace Treaty",
		Cost:      6,
		Condition: ConditionNone,
		Logic:     "All civilizations agree to stay home.",
		Tip:       "One defector breaks the system.",
		Art: []string{
			"░░🤝░░",
			"▓▓📜▓▓",
			"░░☮️░░",
		},
		RedHerring: true,
	},
	{
		ID:        50,
		Category:  CategoryOther,
		Name:      "Gravity Crush",
		Cost:      8,
		Condition: ConditionNone,
		Logic:     "Extreme gravity prevents any life from forming.",
		Tip:       "Too strong - prevents garden itself.",
		Art: []string{
			"▼▼▼▼▼▼",
			"░░🌍░░",
			"░░💀░░",
		},
		RedHerring: true,
	},
}
