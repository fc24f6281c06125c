package quran

// surahs 按标准顺序排列：1=الفاتحة … 114=الناس
var surahs = [SurahCount]Surah{
	{ID: 1, Name: "الفاتحة", AyahCount: 7, StartPage: 1, EndPage: 1, TotalPages: 1},
	{ID: 2, Name: "البقرة", AyahCount: 286, StartPage: 2, EndPage: 49, TotalPages: 48},
	{ID: 3, Name: "آل عمران", AyahCount: 200, StartPage: 50, EndPage: 76, TotalPages: 27},
	{ID: 4, Name: "النساء", AyahCount: 176, StartPage: 77, EndPage: 106, TotalPages: 30},
	{ID: 5, Name: "المائدة", AyahCount: 120, StartPage: 106, EndPage: 128, TotalPages: 22},
	{ID: 6, Name: "الأنعام", AyahCount: 165, StartPage: 128, EndPage: 151, TotalPages: 23},
	{ID: 7, Name: "الأعراف", AyahCount: 206, StartPage: 151, EndPage: 177, TotalPages: 26},
	{ID: 8, Name: "الأنفال", AyahCount: 75, StartPage: 177, EndPage: 187, TotalPages: 10},
	{ID: 9, Name: "التوبة", AyahCount: 129, StartPage: 187, EndPage: 207, TotalPages: 20},
	{ID: 10, Name: "يونس", AyahCount: 109, StartPage: 208, EndPage: 221, TotalPages: 13},
	{ID: 11, Name: "هود", AyahCount: 123, StartPage: 221, EndPage: 235, TotalPages: 14},
	{ID: 12, Name: "يوسف", AyahCount: 111, StartPage: 235, EndPage: 249, TotalPages: 14},
	{ID: 13, Name: "الرعد", AyahCount: 43, StartPage: 249, EndPage: 255, TotalPages: 6},
	{ID: 14, Name: "إبراهيم", AyahCount: 52, StartPage: 255, EndPage: 261, TotalPages: 6},
	{ID: 15, Name: "الحجر", AyahCount: 99, StartPage: 262, EndPage: 267, TotalPages: 5},
	{ID: 16, Name: "النحل", AyahCount: 128, StartPage: 267, EndPage: 281, TotalPages: 14},
	{ID: 17, Name: "الإسراء", AyahCount: 111, StartPage: 282, EndPage: 293, TotalPages: 11},
	{ID: 18, Name: "الكهف", AyahCount: 110, StartPage: 293, EndPage: 304, TotalPages: 11},
	{ID: 19, Name: "مريم", AyahCount: 98, StartPage: 305, EndPage: 312, TotalPages: 7},
	{ID: 20, Name: "طه", AyahCount: 135, StartPage: 312, EndPage: 322, TotalPages: 10},
	{ID: 21, Name: "الأنبياء", AyahCount: 112, StartPage: 322, EndPage: 332, TotalPages: 10},
	{ID: 22, Name: "الحج", AyahCount: 78, StartPage: 332, EndPage: 341, TotalPages: 9},
	{ID: 23, Name: "المؤمنون", AyahCount: 118, StartPage: 342, EndPage: 350, TotalPages: 8},
	{ID: 24, Name: "النور", AyahCount: 64, StartPage: 350, EndPage: 359, TotalPages: 9},
	{ID: 25, Name: "الفرقان", AyahCount: 77, StartPage: 359, EndPage: 367, TotalPages: 8},
	{ID: 26, Name: "الشعراء", AyahCount: 227, StartPage: 367, EndPage: 377, TotalPages: 10},
	{ID: 27, Name: "النمل", AyahCount: 93, StartPage: 377, EndPage: 385, TotalPages: 8},
	{ID: 28, Name: "القصص", AyahCount: 88, StartPage: 385, EndPage: 396, TotalPages: 11},
	{ID: 29, Name: "العنكبوت", AyahCount: 69, StartPage: 396, EndPage: 404, TotalPages: 8},
	{ID: 30, Name: "الروم", AyahCount: 60, StartPage: 404, EndPage: 411, TotalPages: 7},
	{ID: 31, Name: "لقمان", AyahCount: 34, StartPage: 411, EndPage: 414, TotalPages: 3},
	{ID: 32, Name: "السجدة", AyahCount: 30, StartPage: 415, EndPage: 418, TotalPages: 3},
	{ID: 33, Name: "الأحزاب", AyahCount: 73, StartPage: 418, EndPage: 427, TotalPages: 9},
	{ID: 34, Name: "سبأ", AyahCount: 54, StartPage: 428, EndPage: 434, TotalPages: 6},
	{ID: 35, Name: "فاطر", AyahCount: 45, StartPage: 434, EndPage: 440, TotalPages: 6},
	{ID: 36, Name: "يس", AyahCount: 83, StartPage: 440, EndPage: 446, TotalPages: 6},
	{ID: 37, Name: "الصافات", AyahCount: 182, StartPage: 446, EndPage: 453, TotalPages: 7},
	{ID: 38, Name: "ص", AyahCount: 88, StartPage: 453, EndPage: 458, TotalPages: 5},
	{ID: 39, Name: "الزمر", AyahCount: 75, StartPage: 458, EndPage: 467, TotalPages: 9},
	{ID: 40, Name: "غافر", AyahCount: 85, StartPage: 467, EndPage: 477, TotalPages: 10},
	{ID: 41, Name: "فصلت", AyahCount: 54, StartPage: 477, EndPage: 482, TotalPages: 5},
	{ID: 42, Name: "الشورى", AyahCount: 53, StartPage: 483, EndPage: 489, TotalPages: 6},
	{ID: 43, Name: "الزخرف", AyahCount: 89, StartPage: 489, EndPage: 496, TotalPages: 7},
	{ID: 44, Name: "الدخان", AyahCount: 59, StartPage: 496, EndPage: 499, TotalPages: 3},
	{ID: 45, Name: "الجاثية", AyahCount: 37, StartPage: 499, EndPage: 502, TotalPages: 3},
	{ID: 46, Name: "الأحقاف", AyahCount: 35, StartPage: 502, EndPage: 507, TotalPages: 5},
	{ID: 47, Name: "محمد", AyahCount: 38, StartPage: 507, EndPage: 511, TotalPages: 4},
	{ID: 48, Name: "الفتح", AyahCount: 29, StartPage: 511, EndPage: 515, TotalPages: 4},
	{ID: 49, Name: "الحجرات", AyahCount: 18, StartPage: 515, EndPage: 518, TotalPages: 3},
	{ID: 50, Name: "ق", AyahCount: 45, StartPage: 518, EndPage: 523, TotalPages: 5},
	{ID: 51, Name: "الذاريات", AyahCount: 60, StartPage: 523, EndPage: 528, TotalPages: 5},
	{ID: 52, Name: "الطور", AyahCount: 49, StartPage: 523, EndPage: 528, TotalPages: 5},
	{ID: 53, Name: "النجم", AyahCount: 62, StartPage: 526, EndPage: 529, TotalPages: 3},
	{ID: 54, Name: "القمر", AyahCount: 55, StartPage: 528, EndPage: 533, TotalPages: 5},
	{ID: 55, Name: "الرحمن", AyahCount: 78, StartPage: 531, EndPage: 534, TotalPages: 3},
	{ID: 56, Name: "الواقعة", AyahCount: 96, StartPage: 534, EndPage: 537, TotalPages: 3},
	{ID: 57, Name: "الحديد", AyahCount: 29, StartPage: 537, EndPage: 542, TotalPages: 5},
	{ID: 58, Name: "المجادلة", AyahCount: 22, StartPage: 542, EndPage: 545, TotalPages: 3},
	{ID: 59, Name: "الحشر", AyahCount: 24, StartPage: 545, EndPage: 549, TotalPages: 4},
	{ID: 60, Name: "الممتحنة", AyahCount: 13, StartPage: 549, EndPage: 551, TotalPages: 2},
	{ID: 61, Name: "الصف", AyahCount: 14, StartPage: 551, EndPage: 553, TotalPages: 2},
	{ID: 62, Name: "الجمعة", AyahCount: 11, StartPage: 553, EndPage: 554, TotalPages: 1},
	{ID: 63, Name: "المنافقون", AyahCount: 11, StartPage: 554, EndPage: 556, TotalPages: 2},
	{ID: 64, Name: "التغابن", AyahCount: 18, StartPage: 556, EndPage: 558, TotalPages: 2},
	{ID: 65, Name: "الطلاق", AyahCount: 12, StartPage: 558, EndPage: 560, TotalPages: 2},
	{ID: 66, Name: "التحريم", AyahCount: 12, StartPage: 560, EndPage: 562, TotalPages: 2},
	{ID: 67, Name: "الملك", AyahCount: 30, StartPage: 562, EndPage: 564, TotalPages: 2},
	{ID: 68, Name: "القلم", AyahCount: 52, StartPage: 564, EndPage: 566, TotalPages: 2},
	{ID: 69, Name: "الحاقة", AyahCount: 52, StartPage: 566, EndPage: 568, TotalPages: 2},
	{ID: 70, Name: "المعارج", AyahCount: 44, StartPage: 568, EndPage: 570, TotalPages: 2},
	{ID: 71, Name: "نوح", AyahCount: 28, StartPage: 570, EndPage: 573, TotalPages: 3},
	{ID: 72, Name: "الجن", AyahCount: 28, StartPage: 572, EndPage: 574, TotalPages: 2},
	{ID: 73, Name: "المزمل", AyahCount: 20, StartPage: 574, EndPage: 575, TotalPages: 1},
	{ID: 74, Name: "المدثر", AyahCount: 56, StartPage: 575, EndPage: 577, TotalPages: 2},
	{ID: 75, Name: "القيامة", AyahCount: 40, StartPage: 577, EndPage: 578, TotalPages: 1},
	{ID: 76, Name: "الإنسان", AyahCount: 31, StartPage: 578, EndPage: 580, TotalPages: 2},
	{ID: 77, Name: "المرسلات", AyahCount: 50, StartPage: 580, EndPage: 582, TotalPages: 2},
	{ID: 78, Name: "النبأ", AyahCount: 40, StartPage: 582, EndPage: 583, TotalPages: 1},
	{ID: 79, Name: "النازعات", AyahCount: 46, StartPage: 583, EndPage: 585, TotalPages: 2},
	{ID: 80, Name: "عبس", AyahCount: 42, StartPage: 585, EndPage: 586, TotalPages: 1},
	{ID: 81, Name: "التكوير", AyahCount: 29, StartPage: 586, EndPage: 587, TotalPages: 1},
	{ID: 82, Name: "الانفطار", AyahCount: 19, StartPage: 587, EndPage: 587, TotalPages: 1},
	{ID: 83, Name: "المطففين", AyahCount: 36, StartPage: 587, EndPage: 589, TotalPages: 2},
	{ID: 84, Name: "الانشقاق", AyahCount: 25, StartPage: 589, EndPage: 590, TotalPages: 1},
	{ID: 85, Name: "البروج", AyahCount: 22, StartPage: 590, EndPage: 590, TotalPages: 1},
	{ID: 86, Name: "الطارق", AyahCount: 17, StartPage: 591, EndPage: 591, TotalPages: 1},
	{ID: 87, Name: "الأعلى", AyahCount: 19, StartPage: 591, EndPage: 592, TotalPages: 1},
	{ID: 88, Name: "الغاشية", AyahCount: 26, StartPage: 592, EndPage: 592, TotalPages: 1},
	{ID: 89, Name: "الفجر", AyahCount: 30, StartPage: 593, EndPage: 594, TotalPages: 2},
	{ID: 90, Name: "البلد", AyahCount: 20, StartPage: 594, EndPage: 594, TotalPages: 1},
	{ID: 91, Name: "الشمس", AyahCount: 15, StartPage: 595, EndPage: 595, TotalPages: 1},
	{ID: 92, Name: "الليل", AyahCount: 21, StartPage: 595, EndPage: 596, TotalPages: 1},
	{ID: 93, Name: "الضحى", AyahCount: 11, StartPage: 596, EndPage: 596, TotalPages: 1},
	{ID: 94, Name: "الشرح", AyahCount: 8, StartPage: 596, EndPage: 596, TotalPages: 1},
	{ID: 95, Name: "التين", AyahCount: 8, StartPage: 597, EndPage: 597, TotalPages: 1},
	{ID: 96, Name: "العلق", AyahCount: 19, StartPage: 597, EndPage: 597, TotalPages: 1},
	{ID: 97, Name: "القدر", AyahCount: 5, StartPage: 598, EndPage: 598, TotalPages: 1},
	{ID: 98, Name: "البينة", AyahCount: 8, StartPage: 598, EndPage: 599, TotalPages: 1},
	{ID: 99, Name: "الزلزلة", AyahCount: 8, StartPage: 599, EndPage: 599, TotalPages: 1},
	{ID: 100, Name: "العاديات", AyahCount: 11, StartPage: 599, EndPage: 600, TotalPages: 1},
	{ID: 101, Name: "القارعة", AyahCount: 11, StartPage: 600, EndPage: 600, TotalPages: 1},
	{ID: 102, Name: "التكاثر", AyahCount: 8, StartPage: 600, EndPage: 601, TotalPages: 1},
	{ID: 103, Name: "العصر", AyahCount: 3, StartPage: 601, EndPage: 601, TotalPages: 1},
	{ID: 104, Name: "الهمزة", AyahCount: 9, StartPage: 601, EndPage: 601, TotalPages: 1},
	{ID: 105, Name: "الفيل", AyahCount: 5, StartPage: 601, EndPage: 602, TotalPages: 1},
	{ID: 106, Name: "قريش", AyahCount: 4, StartPage: 602, EndPage: 602, TotalPages: 1},
	{ID: 107, Name: "الماعون", AyahCount: 7, StartPage: 602, EndPage: 602, TotalPages: 1},
	{ID: 108, Name: "الكوثر", AyahCount: 3, StartPage: 602, EndPage: 602, TotalPages: 1},
	{ID: 109, Name: "الكافرون", AyahCount: 6, StartPage: 603, EndPage: 603, TotalPages: 1},
	{ID: 110, Name: "النصر", AyahCount: 3, StartPage: 603, EndPage: 603, TotalPages: 1},
	{ID: 111, Name: "المسد", AyahCount: 5, StartPage: 603, EndPage: 603, TotalPages: 1},
	{ID: 112, Name: "الإخلاص", AyahCount: 4, StartPage: 604, EndPage: 604, TotalPages: 1},
	{ID: 113, Name: "الفلق", AyahCount: 5, StartPage: 604, EndPage: 604, TotalPages: 1},
	{ID: 114, Name: "الناس", AyahCount: 6, StartPage: 604, EndPage: 604, TotalPages: 1},
}
