package services

// Prompts for the answering pipeline. The assistant converses in Polish;
// every instruction pins the model to the retrieved context so answers
// stay grounded in the corpus.

// answerSystemPrompt pins grounded generation to the retrieved
// context. Argument: context. The standalone question travels as its
// own user message in the chat call.
const answerSystemPrompt = `Odpowiadaj wyłącznie na podstawie dostarczonego kontekstu.
Jeśli odpowiedź nie znajduje się w kontekście - napisz że nie ma jej w dokumentach.

Kontekst:
%s`

// contextualizePrompt folds the conversation into one self-contained
// question. Arguments: history, question.
const contextualizePrompt = `Na podstawie poniższej historii rozmowy przekształć ostatnie pytanie użytkownika w jedno samodzielne pytanie, zrozumiałe bez znajomości historii.
Zachowaj temat i wszystkie przeczenia (nie odwracaj negacji).
Zwróć wyłącznie przekształcone pytanie, bez komentarza.

Historia rozmowy:
%s

Ostatnie pytanie:
%s

Samodzielne pytanie:`

// judgePrompt asks whether the context can answer the question.
// Arguments: context, question.
const judgePrompt = `Oceń, czy poniższy kontekst zawiera informacje potrzebne do odpowiedzi na pytanie.
Odpowiedz wyłącznie jednym słowem: TAK albo NIE.

Kontekst:
%s

Pytanie:
%s

Odpowiedź:`

// recapPrompt paraphrases the user's previous question. Argument: the
// question.
const recapPrompt = `Użytkownik prosi o przypomnienie, o co pytał wcześniej.
Sparafrazuj poniższe pytanie w drugiej osobie ("pytałeś o..."), nie używając słów "kontekst" ani "historia".
Zwróć wyłącznie parafrazę.

Poprzednie pytanie:
%s

Parafraza:`
