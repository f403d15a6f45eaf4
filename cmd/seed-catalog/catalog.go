package main

// seedCatalog is the launch catalog. Prices are in dollars.
var seedCatalog = []seedProduct{
	{
		Name:        "Apple MacBook Air M3",
		Description: "Ultra-portable laptop with M3 chip, 13.6-inch Liquid Retina display, and up to 18 hours battery life.",
		Price:       "1099.00",
		Image:       "/images/product1.jpg",
		Category:    "Electronics",
	},
	{
		Name:        "Sony WH-1000XM5 Noise-Cancelling Headphones",
		Description: "Industry-leading noise cancellation with crystal-clear call quality and comfortable design.",
		Price:       "348.00",
		Image:       "/images/product2.jpg",
		Category:    "Electronics",
	},
	{
		Name:        "Levi's 501 Original Fit Jeans",
		Description: "The original blue jean since 1873. A cultural icon, worn by generations.",
		Price:       "79.50",
		Image:       "/images/product3.jpg",
		Category:    "Apparel",
	},
	{
		Name:        "Hydro Flask 32 oz Wide Mouth Bottle",
		Description: "Keeps drinks cold for 24 hours, hot for 12. Perfect for outdoor adventures.",
		Price:       "49.95",
		Image:       "/images/product4.jpg",
		Category:    "Outdoor Gear",
	},
	{
		Name:        "Instant Pot Duo 7-in-1 Electric Pressure Cooker",
		Description: "Combines 7 appliances in one: pressure cooker, slow cooker, rice cooker, steamer, sauté pan, yogurt maker, and warmer.",
		Price:       "99.99",
		Image:       "/images/product5.jpg",
		Category:    "Home & Kitchen",
	},
	{
		Name:        "Nintendo Switch OLED Model",
		Description: "Vibrant 7-inch OLED screen, a wide adjustable stand, a wired LAN port, and 64 GB of internal storage.",
		Price:       "349.99",
		Image:       "/images/product6.jpg",
		Category:    "Gaming",
	},
	{
		Name:        "Allbirds Wool Runners",
		Description: "Comfortable, sustainable shoes made with ZQ Merino wool. Lightweight and breathable.",
		Price:       "110.00",
		Image:       "/images/product7.jpg",
		Category:    "Apparel",
	},
	{
		Name:        "Kindle Paperwhite",
		Description: "Thin, lightweight, and travels easily so you can enjoy your favorite books at any time.",
		Price:       "139.99",
		Image:       "/images/product8.jpg",
		Category:    "Electronics",
	},
	{
		Name:        "Dyson V11 Animal Cordless Vacuum",
		Description: "Powerful suction for whole-home cleaning. Intelligently optimizes power and run time.",
		Price:       "599.99",
		Image:       "/images/product9.jpg",
		Category:    "Home & Kitchen",
	},
	{
		Name:        "GoPro HERO11 Black",
		Description: "Unbelievable image quality and HyperSmooth 5.0 video stabilization.",
		Price:       "399.99",
		Image:       "/images/product10.jpg",
		Category:    "Outdoor Gear",
	},
	{
		Name:        "Logitech MX Master 3S Mouse",
		Description: "An iconic mouse, remastered. Now with Quiet Clicks and 8K DPI tracking.",
		Price:       "99.99",
		Image:       "/images/product11.jpg",
		Category:    "Computer Accessories",
	},
	{
		Name:        "Samsung 55-inch QLED 4K Smart TV",
		Description: "Experience a billion shades of color with Quantum Dot. Smart TV powered by Tizen.",
		Price:       "899.99",
		Image:       "/images/product12.jpg",
		Category:    "Electronics",
	},
	{
		Name:        "Columbia Men's Watertight II Jacket",
		Description: "Lightweight and waterproof, perfect for rainy days and outdoor activities.",
		Price:       "75.00",
		Image:       "/images/product13.jpg",
		Category:    "Apparel",
	},
	{
		Name:        "Coleman Sundome Tent (4-Person)",
		Description: "Easy to set up, great for camping trips. WeatherTec system keeps you dry.",
		Price:       "120.00",
		Image:       "/images/product14.jpg",
		Category:    "Outdoor Gear",
	},
	{
		Name:        "KitchenAid Artisan Stand Mixer",
		Description: "Tilt-head design for clear access to the bowl. 10 speeds for nearly any task.",
		Price:       "429.00",
		Image:       "/images/product15.jpg",
		Category:    "Home & Kitchen",
	},
	{
		Name:        "PlayStation 5 Console",
		Description: "Experience lightning-fast loading with an ultra-high speed SSD, deeper immersion with support for haptic feedback, adaptive triggers, and 3D Audio.",
		Price:       "499.99",
		Image:       "/images/product16.jpg",
		Category:    "Gaming",
	},
	{
		Name:        "Google Nest Hub Max",
		Description: "The smart display that helps your busy family stay in touch and on track.",
		Price:       "229.00",
		Image:       "/images/product17.jpg",
		Category:    "Smart Home",
	},
	{
		Name:        "Fitbit Charge 6",
		Description: "Advanced fitness tracker with built-in GPS, heart rate tracking, and Google apps.",
		Price:       "159.95",
		Image:       "/images/product18.jpg",
		Category:    "Wearable Tech",
	},
	{
		Name:        "LEGO Technic Bugatti Chiron",
		Description: "A stunning 1:8 scale replica of the iconic supercar, with intricate details.",
		Price:       "349.99",
		Image:       "/images/product19.jpg",
		Category:    "Toys & Games",
	},
	{
		Name:        "Bose QuietComfort Earbuds II",
		Description: "World-class noise cancellation and custom-tuned sound for immersive audio.",
		Price:       "279.00",
		Image:       "/images/product20.jpg",
		Category:    "Audio",
	},
	{
		Name:        "Samsung Galaxy S24 Ultra",
		Description: "The ultimate smartphone experience with AI features, a stunning display, and a powerful camera system.",
		Price:       "1299.00",
		Image:       "/images/product21.jpg",
		Category:    "Electronics",
	},
	{
		Name:        "Anker Portable Power Bank",
		Description: "High-capacity portable charger for phones and tablets. Fast charging technology.",
		Price:       "45.99",
		Image:       "/images/product22.jpg",
		Category:    "Computer Accessories",
	},
	{
		Name:        "Patagonia Better Sweater Fleece Jacket",
		Description: "Warm, low-bulk fleece jacket made of 100% recycled polyester.",
		Price:       "149.00",
		Image:       "/images/product23.jpg",
		Category:    "Apparel",
	},
	{
		Name:        "Osprey Talon 22 Hiking Backpack",
		Description: "Lightweight and versatile, perfect for day hikes and quick adventures.",
		Price:       "130.00",
		Image:       "/images/product24.jpg",
		Category:    "Outdoor Gear",
	},
	{
		Name:        "Ninja Foodi 6-in-1 8-qt. 2-Basket Air Fryer",
		Description: "Two independent baskets let you cook two foods two ways at the same time.",
		Price:       "179.99",
		Image:       "/images/product25.jpg",
		Category:    "Home & Kitchen",
	},
	{
		Name:        "Xbox Series X",
		Description: "The fastest, most powerful Xbox ever. Experience 4K gaming at up to 120 frames per second.",
		Price:       "499.99",
		Image:       "/images/product26.jpg",
		Category:    "Gaming",
	},
	{
		Name:        "Philips Hue White and Color Ambiance Starter Kit",
		Description: "Smart lighting for your home. Control with your voice or smart device.",
		Price:       "199.99",
		Image:       "/images/product27.jpg",
		Category:    "Smart Home",
	},
	{
		Name:        "Apple Watch Series 9",
		Description: "A powerful way to stay connected, active, healthy, and safe.",
		Price:       "399.00",
		Image:       "/images/product28.jpg",
		Category:    "Wearable Tech",
	},
	{
		Name:        "Catan Board Game",
		Description: "A strategy game where players collect resources and build settlements.",
		Price:       "49.00",
		Image:       "/images/product29.jpg",
		Category:    "Toys & Games",
	},
	{
		Name:        "JBL Flip 6 Portable Bluetooth Speaker",
		Description: "Bold sound for every adventure. Waterproof and dustproof.",
		Price:       "129.95",
		Image:       "/images/product30.jpg",
		Category:    "Audio",
	},
	{
		Name:        "Instant Camera (Fujifilm Instax Mini 12)",
		Description: "Capture and print instant photos. Features automatic exposure and easy-to-use controls.",
		Price:       "79.95",
		Image:       "/images/product31.jpg",
		Category:    "Photography",
	},
	{
		Name:        "Beginner Acoustic Guitar Kit",
		Description: "Full-size acoustic guitar with gig bag, tuner, picks, and strap. Perfect for aspiring musicians.",
		Price:       "149.00",
		Image:       "/images/product32.jpg",
		Category:    "Musical Instruments",
	},
	{
		Name:        "Yoga Mat (Manduka PROlite)",
		Description: "Lightweight, durable, and non-slip yoga mat. Provides excellent support and cushioning.",
		Price:       "85.00",
		Image:       "/images/product33.jpg",
		Category:    "Fitness",
	},
	{
		Name:        "Electric Toothbrush (Oral-B iO Series 9)",
		Description: "Revolutionary magnetic iO technology for a professional clean feeling every day.",
		Price:       "299.99",
		Image:       "/images/product34.jpg",
		Category:    "Health & Personal Care",
	},
	{
		Name:        "Board Game (Ticket to Ride)",
		Description: "A strategy game where players collect resources and build settlements.",
		Price:       "54.99",
		Image:       "/images/product35.jpg",
		Category:    "Toys & Games",
	},
	{
		Name:        "Smart Water Bottle (HidrateSpark PRO)",
		Description: "Tracks your water intake and glows to remind you to drink.",
		Price:       "69.99",
		Image:       "/images/product36.jpg",
		Category:    "Smart Home",
	},
	{
		Name:        "Noise-Cancelling Earbuds (Apple AirPods Pro 2)",
		Description: "Active Noise Cancellation, Transparency mode, and Spatial Audio with dynamic head tracking.",
		Price:       "249.00",
		Image:       "/images/product37.jpg",
		Category:    "Audio",
	},
	{
		Name:        "Gaming Headset (HyperX Cloud II)",
		Description: "Durable, comfortable, and delivers great sound for gaming.",
		Price:       "99.99",
		Image:       "/images/product38.jpg",
		Category:    "Gaming",
	},
	{
		Name:        "Smartwatch (Garmin Forerunner 965)",
		Description: "Advanced GPS running and triathlon smartwatch with a vibrant AMOLED display.",
		Price:       "599.99",
		Image:       "/images/product39.jpg",
		Category:    "Wearable Tech",
	},
	{
		Name:        "Portable Projector (XGIMI MoGo 2 Pro)",
		Description: "Compact and powerful portable projector with 1080p resolution and built-in Android TV.",
		Price:       "599.00",
		Image:       "/images/product40.jpg",
		Category:    "Electronics",
	},
	{
		Name:        "Espresso Machine (Breville Barista Express Impress)",
		Description: "Achieve the perfect dose and a precise tamp with the intelligent dosing system.",
		Price:       "799.95",
		Image:       "/images/product41.jpg",
		Category:    "Home & Kitchen",
	},
	{
		Name:        "Hiking Boots (Merrell Moab 3 Mid Waterproof)",
		Description: "Comfortable, durable, and waterproof hiking boots for all-terrain adventures.",
		Price:       "140.00",
		Image:       "/images/product42.jpg",
		Category:    "Outdoor Gear",
	},
	{
		Name:        "Smart Home Security Camera (Arlo Pro 4)",
		Description: "2K HDR video, 160-degree view, integrated spotlight, and color night vision.",
		Price:       "199.99",
		Image:       "/images/product43.jpg",
		Category:    "Smart Home",
	},
	{
		Name:        "Electric Scooter (Segway Ninebot MAX G2)",
		Description: "Long range, powerful motor, and comfortable ride for urban commuting.",
		Price:       "999.00",
		Image:       "/images/product44.jpg",
		Category:    "Outdoor Gear",
	},
	{
		Name:        "Robot Vacuum (Roomba j7+)",
		Description: "Empties itself for up to 60 days. Avoids obstacles like pet waste and charging cords.",
		Price:       "799.00",
		Image:       "/images/product45.jpg",
		Category:    "Home & Kitchen",
	},
	{
		Name:        "Digital Drawing Tablet (Wacom Intuos Pro)",
		Description: "Professional-grade pen tablet for digital art, design, and photo editing.",
		Price:       "379.95",
		Image:       "/images/product46.jpg",
		Category:    "Computer Accessories",
	},
	{
		Name:        "Smart Scale (Withings Body+)",
		Description: "Full body composition analysis (weight, body fat, muscle mass, bone mass, water) with Wi-Fi sync.",
		Price:       "99.95",
		Image:       "/images/product47.jpg",
		Category:    "Health & Personal Care",
	},
	{
		Name:        "Portable Bluetooth Speaker (UE Boom 3)",
		Description: "Super-portable wireless speaker with 360° sound, deep bass, and IP67 waterproof/dustproof rating.",
		Price:       "149.99",
		Image:       "/images/product48.jpg",
		Category:    "Audio",
	},
	{
		Name:        "Digital Camera (Canon EOS R100)",
		Description: "Compact and lightweight mirrorless camera with 24.2MP APS-C sensor and 4K video.",
		Price:       "499.99",
		Image:       "/images/product49.jpg",
		Category:    "Photography",
	},
	{
		Name:        "Electric Guitar (Fender Player Stratocaster)",
		Description: "Classic electric guitar with a comfortable modern C-shaped neck and three single-coil pickups.",
		Price:       "799.99",
		Image:       "/images/product50.jpg",
		Category:    "Musical Instruments",
	},
	{
		Name:        "Running Shoes (Brooks Ghost 15)",
		Description: "Soft cushioning, smooth transitions, and lightweight design for daily runs.",
		Price:       "140.00",
		Image:       "/images/product51.jpg",
		Category:    "Fitness",
	},
	{
		Name:        "Air Purifier (Coway Airmega 200M)",
		Description: "Captures 99.999% of ultrafine particles, including allergens, pollutants, and volatile organic compounds.",
		Price:       "229.00",
		Image:       "/images/product52.jpg",
		Category:    "Home & Kitchen",
	},
}
