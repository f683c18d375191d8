package location

// districtNames maps district spellings seen in market feeds to Marathi.
var districtNames = map[string]string{
	"Mumbai":                    "मुंबई",
	"Pune":                      "पुणे",
	"Nashik":                    "नाशिक",
	"Nagpur":                    "नागपूर",
	"Thane":                     "ठाणे",
	"Aurangabad":                "औरंगाबाद",
	"Solapur":                   "सोलापूर",
	"Kolhapur":                  "कोल्हापूर",
	"Ahmednagar":                "अहमदनगर",
	"Satara":                    "सातारा",
	"Sangli":                    "सांगली",
	"Raigad":                    "रायगड",
	"Jalgaon":                   "जळगाव",
	"Dhule":                     "धुळे",
	"Nanded":                    "नांदेड",
	"Latur":                     "लातूर",
	"Amravati":                  "अमरावती",
	"Amarawati":                 "अमरावती",
	"Akola":                     "अकोला",
	"Buldhana":                  "बुलढाणा",
	"Yavatmal":                  "यवतमाळ",
	"Washim":                    "वाशीम",
	"Wardha":                    "वर्धा",
	"Chandrapur":                "चंद्रपूर",
	"Gadchiroli":                "गडचिरोली",
	"Gondia":                    "गोंदिया",
	"Bhandara":                  "भंडारा",
	"Parbhani":                  "परभणी",
	"Hingoli":                   "हिंगोली",
	"Jalna":                     "जालना",
	"Jalana":                    "जालना",
	"Beed":                      "बीड",
	"Osmanabad":                 "उस्मानाबाद",
	"Ratnagiri":                 "रत्नागिरी",
	"Sindhudurg":                "सिंधुदुर्ग",
	"Palghar":                   "पालघर",
	"Nandurbar":                 "नंदुरबार",
	"Ahmadnagar":                "अहमदनगर",
	"Chhatrapati Sambhajinagar": "छत्रपती संभाजीनगर",
	"Dharashiv":                 "धाराशिव",
}

// commodityNames maps commodity names as published by APMCs to Marathi.
var commodityNames = map[string]string{
	"Tomato":                        "टोमॅटो",
	"Onion":                         "कांदा",
	"Potato":                        "बटाटा",
	"Brinjal":                       "वांगे",
	"Cabbage":                       "कोबी",
	"Cauliflower":                   "फुलकोबी",
	"Carrot":                        "गाजर",
	"Radish":                        "मुळा",
	"Beetroot":                      "बीट",
	"Spinach":                       "पालक",
	"Methi(Leaves)":                 "मेथी",
	"Coriander(Leaves)":             "कोथिंबीर",
	"Green Chilli":                  "हिरवी मिरची",
	"Capsicum":                      "ढोबळी मिरची",
	"Bitter gourd":                  "कारले",
	"Bottle gourd":                  "दुधी भोपळा",
	"Ridge gourd(Tori)":             "दोडका",
	"Cucumber":                      "काकडी",
	"Pumpkin":                       "भोपळा",
	"Lady Finger":                   "भेंडी",
	"Bhindi(Ladies Finger)":         "भेंडी",
	"Drumstick":                     "शेवगा",
	"Cluster beans":                 "गवार",
	"French Beans (Frasbean)":       "फरसबी",
	"Green Peas":                    "हिरवे वाटाणे",
	"Sweet Potato":                  "रताळे",
	"Ginger":                        "आले",
	"Garlic":                        "लसूण",
	"Turmeric":                      "हळद",
	"Banana":                        "केळी",
	"Mango":                         "आंबा",
	"Grapes":                        "द्राक्षे",
	"Pomegranate":                   "डाळिंब",
	"Orange":                        "संत्री",
	"Sweet Orange":                  "मोसंबी",
	"Papaya":                        "पपई",
	"Guava":                         "पेरू",
	"Watermelon":                    "कलिंगड",
	"Muskmelon":                     "खरबूज",
	"Lemon":                         "लिंबू",
	"Lime":                          "कागदी लिंबू",
	"Coconut":                       "नारळ",
	"Sapota(chikkoo)":               "चिकू",
	"Apple":                         "सफरचंद",
	"Custard Apple (Sharifa)":       "सीताफळ",
	"Fig":                           "अंजीर",
	"Jackfruit":                     "फणस",
	"Pineapple":                     "अननस",
	"Strawberry":                    "स्ट्रॉबेरी",
	"Wheat":                         "गहू",
	"Rice":                          "तांदूळ",
	"Paddy(Dhan)":                   "भात",
	"Maize":                         "मका",
	"Jowar(Sorghum)":                "ज्वारी",
	"Bajra(Pearl Millet)":           "बाजरी",
	"Ragi (Finger Millet)":          "नाचणी",
	"Barley (Jau)":                  "जव",
	"Bengal Gram(Gram)":             "हरभरा",
	"Bengal Gram(Gram)(Whole)":      "हरभरा (संपूर्ण)",
	"Arhar (Tur/Red Gram)(Whole)":   "तूर डाळ",
	"Arhar Dal(Tur Dal)":            "तूर डाळ",
	"Green Gram (Moong)":            "मूग",
	"Green Gram (Moong)(Whole)":     "मूग (संपूर्ण)",
	"Green Gram Dal (Moong Dal)":    "मूग डाळ",
	"Black Gram (Urd Beans)":        "उडीद",
	"Black Gram (Urd Beans)(Whole)": "उडीद (संपूर्ण)",
	"Black gram (Urd Beans)(Whole)": "उडीद (संपूर्ण)",
	"Lentil (Masur)":                "मसूर",
	"Masoor Dal":                    "मसूर डाळ",
	"Cowpea (Lobia/Karamani)":       "चवळी",
	"Kulthi(Horse Gram)":            "कुळीथ",
	"Moth Beans":                    "मटकी",
	"Peas (Dry)":                    "वाटाणे (सुके)",
	"Soybean":                       "सोयाबीन",
	"Soyabean":                      "सोयाबीन",
	"Groundnut":                     "शेंगदाणे",
	"Mustard":                       "मोहरी",
	"Sunflower":                     "सूर्यफूल",
	"Safflower":                     "करडई",
	"Sesame(Sesamum,Gingelly,Til)":  "तीळ",
	"Castor Seed":                   "एरंडी",
	"Linseed":                       "जवस",
	"Niger Seed(Ramtil)":            "करळ",
	"Cotton":                        "कापूस",
	"Sugarcane":                     "ऊस",
	"Jute":                          "ताग",
	"Tobacco":                       "तंबाखू",
	"Chillies(Red)":                 "लाल मिरची",
	"Dry Chillies":                  "सुकी मिरची",
	"Coriander seed":                "धणे",
	"Cumin Seed(Jeera)":             "जिरे",
	"Fenugreek Seed":                "मेथी दाणे",
	"Ajwan":                         "ओवा",
	"Black Pepper":                  "काळी मिरी",
	"Cardamom":                      "वेलची",
	"Cloves":                        "लवंग",
	"Nutmeg":                        "जायफळ",
	"Tamarind":                      "चिंच",
	"Almond(Badam)":                 "बदाम",
	"Cashewnuts":                    "काजू",
	"Arecanut(Betelnut/Supari)":     "सुपारी",
	"Walnut":                        "अक्रोड",
	"Raisin":                        "मनुके",
	"Dates(Chhuhara/Khajur)":        "खारीक/खजूर",
	"Sugar":                         "साखर",
	"Jaggery":                       "गूळ",
	"Gur (Jaggery)":                 "गूळ",
	"Tea":                           "चहा",
	"Coffee":                        "कॉफी",
	"Rubber":                        "रबर",
	"Copra":                         "खोबरे",
	"Soanf":                         "बडीशेप",
	"Tender Coconut":                "शहाळा",
	"Coconut Oil":                   "खोबरेल तेल",
}

// stateNames maps state names to Marathi.
var stateNames = map[string]string{
	"Maharashtra":    "महाराष्ट्र",
	"Gujarat":        "गुजरात",
	"Karnataka":      "कर्नाटक",
	"Andhra Pradesh": "आंध्र प्रदेश",
	"Telangana":      "तेलंगणा",
	"Madhya Pradesh": "मध्य प्रदेश",
	"Rajasthan":      "राजस्थान",
	"Punjab":         "पंजाब",
	"Haryana":        "हरियाणा",
	"Uttar Pradesh":  "उत्तर प्रदेश",
	"Tamil Nadu":     "तामिळनाडू",
	"Kerala":         "केरळ",
	"West Bengal":    "पश्चिम बंगाल",
}
