package content

import "partyhub/internal/game"

var mltPrompts = []string{
	"Who is most likely to sleep through their alarm?",
	"Who is most likely to become famous?",
	"Who is most likely to cry during a movie?",
	"Who is most likely to survive a zombie apocalypse?",
	"Who is most likely to forget their own birthday?",
	"Who is most likely to win a reality TV show?",
	"Who is most likely to adopt five cats?",
	"Who is most likely to text the wrong person?",
	"Who is most likely to laugh at the worst moment?",
	"Who is most likely to start a business on a whim?",
	"Who is most likely to get lost with GPS on?",
	"Who is most likely to eat dessert before dinner?",
	"Who is most likely to befriend a stranger on a plane?",
	"Who is most likely to show up a day early to a party?",
	"Who is most likely to become a millionaire by accident?",
}

var wyrPrompts = []wyrPrompt{
	{"Would you rather...", "Always be 10 minutes late", "Always be 20 minutes early"},
	{"Would you rather...", "Be able to fly", "Be invisible"},
	{"Would you rather...", "Never use social media again", "Never watch another movie"},
	{"Would you rather...", "Have unlimited tacos", "Have unlimited pizza"},
	{"Would you rather...", "Live without music", "Live without television"},
	{"Would you rather...", "Talk to animals", "Speak every human language"},
	{"Would you rather...", "Always have to sing instead of speak", "Always have to dance while walking"},
	{"Would you rather...", "Time travel to the past", "Time travel to the future"},
	{"Would you rather...", "Only eat breakfast food", "Only eat dinner food"},
	{"Would you rather...", "Have a rewind button for life", "Have a pause button for life"},
	{"Would you rather...", "Be the funniest person in the room", "Be the smartest person in the room"},
	{"Would you rather...", "Live on a boat", "Live in a treehouse"},
}

var triviaQuestions = []game.TriviaQuestion{
	{Question: "What is the largest planet in our solar system?", Options: []string{"Earth", "Saturn", "Jupiter", "Neptune"}, CorrectIndex: 2},
	{Question: "Which element has the chemical symbol 'O'?", Options: []string{"Gold", "Oxygen", "Osmium", "Silver"}, CorrectIndex: 1},
	{Question: "In which year did the first humans land on the Moon?", Options: []string{"1965", "1969", "1972", "1975"}, CorrectIndex: 1},
	{Question: "What is the capital of Australia?", Options: []string{"Sydney", "Melbourne", "Canberra", "Perth"}, CorrectIndex: 2},
	{Question: "How many strings does a standard violin have?", Options: []string{"4", "5", "6", "7"}, CorrectIndex: 0},
	{Question: "Which ocean is the deepest?", Options: []string{"Atlantic", "Indian", "Arctic", "Pacific"}, CorrectIndex: 3},
	{Question: "Who painted the Mona Lisa?", Options: []string{"Michelangelo", "Leonardo da Vinci", "Raphael", "Donatello"}, CorrectIndex: 1},
	{Question: "What is the smallest prime number?", Options: []string{"0", "1", "2", "3"}, CorrectIndex: 2},
	{Question: "Which country invented tea bags?", Options: []string{"China", "India", "United Kingdom", "United States"}, CorrectIndex: 3},
	{Question: "What gas do plants absorb from the atmosphere?", Options: []string{"Oxygen", "Nitrogen", "Carbon dioxide", "Helium"}, CorrectIndex: 2},
	{Question: "How many bones are in the adult human body?", Options: []string{"186", "206", "226", "246"}, CorrectIndex: 1},
	{Question: "Which planet is known as the Red Planet?", Options: []string{"Venus", "Mercury", "Mars", "Saturn"}, CorrectIndex: 2},
	{Question: "What is the longest river in the world?", Options: []string{"Amazon", "Nile", "Yangtze", "Mississippi"}, CorrectIndex: 1},
	{Question: "In computing, what does 'CPU' stand for?", Options: []string{"Central Processing Unit", "Computer Personal Unit", "Central Program Utility", "Core Power Unit"}, CorrectIndex: 0},
	{Question: "Which animal is the fastest on land?", Options: []string{"Lion", "Cheetah", "Pronghorn", "Greyhound"}, CorrectIndex: 1},
	{Question: "How many sides does a hexagon have?", Options: []string{"5", "6", "7", "8"}, CorrectIndex: 1},
	{Question: "What is the hardest natural substance on Earth?", Options: []string{"Quartz", "Titanium", "Diamond", "Obsidian"}, CorrectIndex: 2},
	{Question: "Which composer wrote the Ninth Symphony while deaf?", Options: []string{"Mozart", "Bach", "Beethoven", "Brahms"}, CorrectIndex: 2},
	{Question: "What is the currency of Japan?", Options: []string{"Won", "Yuan", "Yen", "Ringgit"}, CorrectIndex: 2},
	{Question: "Which sea creature has three hearts?", Options: []string{"Shark", "Octopus", "Dolphin", "Jellyfish"}, CorrectIndex: 1},
}

var hotseatPrompts = []string{
	"What is the most embarrassing song on your playlist?",
	"What would you do with one extra hour every day?",
	"What is your most useless talent?",
	"What food could you eat every day forever?",
	"What was your worst fashion phase?",
	"If you could swap lives with anyone here for a day, who and why?",
	"What is the weirdest thing you believed as a child?",
	"What app do you waste the most time on?",
	"What would the title of your autobiography be?",
	"What is your go-to karaoke song?",
}

var quickdrawPrompts = []string{
	"Name a pizza topping",
	"Name a country in Europe",
	"Name something you find at the beach",
	"Name a breakfast food",
	"Name an animal with four legs",
	"Name a movie genre",
	"Name something in a kitchen drawer",
	"Name a sport played with a ball",
	"Name a fruit",
	"Name something you take camping",
	"Name a board game",
	"Name a superhero",
}

var wavelengthPrompts = []string{
	"Cold (0) to Hot (100): a lukewarm cup of coffee",
	"Boring (0) to Exciting (100): doing your taxes",
	"Underrated (0) to Overrated (100): pineapple on pizza",
	"Scary (0) to Cute (100): a raccoon in your garden",
	"Cheap (0) to Expensive (100): a decent haircut",
	"Quiet (0) to Loud (100): a library on exam week",
	"Useless (0) to Essential (100): a phone charger",
	"Old-fashioned (0) to Futuristic (100): handwritten letters",
	"Unhealthy (0) to Healthy (100): granola bars",
	"Easy (0) to Hard (100): parallel parking",
}

var votebattlePrompts = []string{
	"Write the worst possible opening line for a job interview",
	"Invent a terrible name for a pet goldfish",
	"Pitch a movie in exactly five words",
	"Write a fortune cookie message nobody wants",
	"Invent a new holiday and name it",
	"Write the most suspicious excuse for being late",
	"Name a band that should never exist",
	"Write a one-line review of Earth",
	"Invent a useless superpower",
	"Write the first sentence of a bad novel",
}

var estimationPrompts = []estimationPrompt{
	{"How many keys does a standard piano have?", 88},
	{"How many minutes are in a week?", 10080},
	{"How many countries are members of the United Nations?", 193},
	{"What year was the first iPhone released?", 2007},
	{"How many bones does a shark have?", 0},
	{"How many time zones does Russia span?", 11},
	{"How tall is the Eiffel Tower in meters?", 330},
	{"How many hearts does an octopus have?", 3},
	{"How many players are on the field in a soccer match (both teams)?", 22},
	{"How many moons does Jupiter have at least?", 95},
}

var spyLocations = []spyLocation{
	{"Space Station", []string{"Commander", "Engineer", "Scientist", "Doctor", "Tourist", "Robot Technician"}},
	{"Pirate Ship", []string{"Captain", "First Mate", "Cook", "Lookout", "Deckhand", "Stowaway"}},
	{"Movie Studio", []string{"Director", "Actor", "Camera Operator", "Stunt Double", "Makeup Artist", "Producer"}},
	{"Hospital", []string{"Surgeon", "Nurse", "Patient", "Receptionist", "Janitor", "Paramedic"}},
	{"Casino", []string{"Dealer", "Security Guard", "High Roller", "Bartender", "Magician", "Accountant"}},
	{"Submarine", []string{"Captain", "Sonar Operator", "Cook", "Mechanic", "Navigator", "Radio Operator"}},
	{"Amusement Park", []string{"Ride Operator", "Mascot", "Food Vendor", "Lost Child", "Maintenance Worker", "Ticket Seller"}},
	{"Polar Research Base", []string{"Station Chief", "Meteorologist", "Biologist", "Cook", "Pilot", "Mechanic"}},
}

var jeopardyCategories = []game.JeopardyCategory{
	{Name: "World Capitals", Clues: []game.JeopardyClue{
		{Question: "The capital of France", Answer: "Paris"},
		{Question: "The capital of Canada", Answer: "Ottawa"},
		{Question: "The capital of Kazakhstan", Answer: "Astana"},
	}},
	{Name: "Animal Kingdom", Clues: []game.JeopardyClue{
		{Question: "The tallest living land animal", Answer: "Giraffe"},
		{Question: "The only mammal capable of true flight", Answer: "Bat"},
		{Question: "The bird with the largest wingspan", Answer: "Albatross"},
	}},
	{Name: "Science", Clues: []game.JeopardyClue{
		{Question: "H2O is the chemical formula for this", Answer: "Water"},
		{Question: "The force that keeps planets in orbit", Answer: "Gravity"},
		{Question: "The powerhouse of the cell", Answer: "Mitochondria"},
	}},
	{Name: "Pop Culture", Clues: []game.JeopardyClue{
		{Question: "The wizarding school attended by Harry Potter", Answer: "Hogwarts"},
		{Question: "The fictional metal in Captain America's shield", Answer: "Vibranium"},
		{Question: "The streaming show set in Hawkins, Indiana", Answer: "Stranger Things"},
	}},
	{Name: "Food & Drink", Clues: []game.JeopardyClue{
		{Question: "The Italian dish of thin dough, tomato, and cheese", Answer: "Pizza"},
		{Question: "The fermented cabbage dish central to Korean cuisine", Answer: "Kimchi"},
		{Question: "The spirit distilled from agave", Answer: "Tequila"},
	}},
	{Name: "On the Map", Clues: []game.JeopardyClue{
		{Question: "The longest mountain range in the world", Answer: "The Andes"},
		{Question: "The desert covering much of northern Africa", Answer: "The Sahara"},
		{Question: "The strait separating Europe and Africa", Answer: "The Strait of Gibraltar"},
	}},
}
